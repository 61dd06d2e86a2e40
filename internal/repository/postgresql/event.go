package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/chronosecure/timeclock-backend-go/internal/domain/event"
	"github.com/chronosecure/timeclock-backend-go/internal/pkg/database"
)

type eventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) event.EventRepository {
	return &eventRepository{db: db}
}

// Create implements event.EventRepository.
func (r *eventRepository) Create(ctx context.Context, ev event.AttendanceEvent) (event.AttendanceEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (
			id, company_id, employee_id, event_type, event_timestamp,
			device_id, confidence_score, is_offline_sync, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, NOW()
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		ev.ID, ev.CompanyID, ev.EmployeeID, ev.EventType, ev.Timestamp,
		ev.DeviceID, ev.ConfidenceScore, ev.IsOfflineSync,
	).Scan(&ev.CreatedAt)

	if err != nil {
		return event.AttendanceEvent{}, fmt.Errorf("failed to create attendance event: %w", err)
	}

	return ev, nil
}

// ListByEmployeeBetween implements event.EventRepository. The created_at
// tiebreak keeps replay order stable when two events share a timestamp.
func (r *eventRepository) ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]event.AttendanceEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, event_type, event_timestamp,
			   device_id, confidence_score, is_offline_sync, created_at
		FROM attendance_events
		WHERE employee_id = $1
		  AND company_id = $2
		  AND event_timestamp >= $3
		  AND event_timestamp < $4
		ORDER BY event_timestamp ASC, created_at ASC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
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

// LatestByEmployeeSince implements event.EventRepository.
func (r *eventRepository) LatestByEmployeeSince(ctx context.Context, employeeID string, since time.Time, companyID string) (*event.AttendanceEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, event_type, event_timestamp,
			   device_id, confidence_score, is_offline_sync, created_at
		FROM attendance_events
		WHERE employee_id = $1
		  AND company_id = $2
		  AND event_timestamp >= $3
		ORDER BY event_timestamp DESC, created_at DESC
		LIMIT 1
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest attendance event: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	var ev event.AttendanceEvent
	if err := rows.Scan(
		&ev.ID, &ev.CompanyID, &ev.EmployeeID, &ev.EventType, &ev.Timestamp,
		&ev.DeviceID, &ev.ConfidenceScore, &ev.IsOfflineSync, &ev.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to scan attendance event: %w", err)
	}

	return &ev, nil
}

// List implements event.EventRepository.
func (r *eventRepository) List(ctx context.Context, filter event.EventFilter, companyID string) ([]event.AttendanceEvent, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE ae.company_id = $1"
	args := []interface{}{companyID}
	argIndex := 2

	if filter.EmployeeID != nil {
		whereClause += fmt.Sprintf(" AND ae.employee_id = $%d", argIndex)
		args = append(args, *filter.EmployeeID)
		argIndex++
	}

	if filter.StartDate != nil {
		whereClause += fmt.Sprintf(" AND ae.event_timestamp >= $%d::date", argIndex)
		args = append(args, *filter.StartDate)
		argIndex++
	}

	if filter.EndDate != nil {
		whereClause += fmt.Sprintf(" AND ae.event_timestamp < ($%d::date + INTERVAL '1 day')", argIndex)
		args = append(args, *filter.EndDate)
		argIndex++
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM attendance_events ae %s`, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance events: %w", err)
	}

	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT ae.id, ae.company_id, ae.employee_id, ae.event_type, ae.event_timestamp,
			   ae.device_id, ae.confidence_score, ae.is_offline_sync, ae.created_at,
			   e.full_name AS employee_name
		FROM attendance_events ae
		JOIN employees e ON ae.employee_id = e.id
		%s
		ORDER BY ae.event_timestamp %s, ae.created_at %s
		LIMIT $%d OFFSET $%d
	`, whereClause, sortOrder, sortOrder, argIndex, argIndex+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance events: %w", err)
	}
	defer rows.Close()

	var events []event.AttendanceEvent
	for rows.Next() {
		var ev event.AttendanceEvent
		var employeeName string
		if err := rows.Scan(
			&ev.ID, &ev.CompanyID, &ev.EmployeeID, &ev.EventType, &ev.Timestamp,
			&ev.DeviceID, &ev.ConfidenceScore, &ev.IsOfflineSync, &ev.CreatedAt,
			&employeeName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		ev.EmployeeName = &employeeName
		events = append(events, ev)
	}

	return events, total, rows.Err()
}
