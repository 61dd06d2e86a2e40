package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/chronosecure/timeclock-backend-go/internal/domain/dashboard"
	"github.com/chronosecure/timeclock-backend-go/internal/domain/event"
	"github.com/chronosecure/timeclock-backend-go/internal/pkg/database"
)

type dashboardRepository struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepository{db: db}
}

// CountActiveEmployees implements dashboard.DashboardRepository.
func (r *dashboardRepository) CountActiveEmployees(ctx context.Context, companyID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM employees WHERE company_id = $1 AND is_active = true`,
		companyID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active employees: %w", err)
	}

	return count, nil
}

// LatestEventPerEmployee implements dashboard.DashboardRepository.
func (r *dashboardRepository) LatestEventPerEmployee(ctx context.Context, companyID string, from, to time.Time) ([]event.AttendanceEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT ON (employee_id)
			   id, company_id, employee_id, event_type, event_timestamp,
			   device_id, confidence_score, is_offline_sync, created_at
		FROM attendance_events
		WHERE company_id = $1
		  AND event_timestamp >= $2
		  AND event_timestamp < $3
		ORDER BY employee_id, event_timestamp DESC, created_at DESC
	`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest events per employee: %w", err)
	}
	defer rows.Close()

	var events []event.AttendanceEvent
	for rows.Next() {
		var ev event.AttendanceEvent
		if err := rows.Scan(
			&ev.ID, &ev.CompanyID, &ev.EmployeeID, &ev.EventType, &ev.Timestamp,
			&ev.DeviceID, &ev.ConfidenceScore, &ev.IsOfflineSync, &ev.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, ev)
	}

	return events, rows.Err()
}
