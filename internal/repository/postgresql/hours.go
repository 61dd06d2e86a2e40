package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/chronosecure/timeclock-backend-go/internal/domain/hours"
	"github.com/chronosecure/timeclock-backend-go/internal/pkg/database"
)

// Durations are stored as whole seconds (BIGINT); time.Duration only
// survives a round-trip losslessly at that resolution, and clock events
// do not carry sub-second payroll meaning.
type hoursRepository struct {
	db *database.DB
}

func NewHoursRepository(db *database.DB) hours.HoursRepository {
	return &hoursRepository{db: db}
}

// Upsert implements hours.HoursRepository. The unique constraint on
// (employee_id, work_date) makes the recompute single-row and atomic.
func (r *hoursRepository) Upsert(ctx context.Context, rec hours.CalculatedHoursRecord) (hours.CalculatedHoursRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO calculated_hours (
			id, company_id, employee_id, work_date,
			total_seconds_worked, weekday_seconds, saturday_seconds, sunday_seconds,
			public_holiday_seconds, leave_seconds, calculated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
		ON CONFLICT (employee_id, work_date) DO UPDATE SET
			total_seconds_worked = EXCLUDED.total_seconds_worked,
			weekday_seconds = EXCLUDED.weekday_seconds,
			saturday_seconds = EXCLUDED.saturday_seconds,
			sunday_seconds = EXCLUDED.sunday_seconds,
			public_holiday_seconds = EXCLUDED.public_holiday_seconds,
			leave_seconds = EXCLUDED.leave_seconds,
			calculated_at = EXCLUDED.calculated_at
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		rec.ID, rec.CompanyID, rec.EmployeeID, rec.WorkDate,
		int64(rec.TotalHoursWorked.Seconds()),
		int64(rec.WeekdayHours.Seconds()),
		int64(rec.SaturdayHours.Seconds()),
		int64(rec.SundayHours.Seconds()),
		int64(rec.PublicHolidayHours.Seconds()),
		int64(rec.LeaveHours.Seconds()),
		rec.CalculatedAt,
	).Scan(&rec.ID)
	if err != nil {
		return hours.CalculatedHoursRecord{}, fmt.Errorf("failed to upsert calculated hours: %w", err)
	}

	return rec, nil
}

// GetByEmployeeAndDate implements hours.HoursRepository.
func (r *hoursRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (hours.CalculatedHoursRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, work_date,
			   total_seconds_worked, weekday_seconds, saturday_seconds, sunday_seconds,
			   public_holiday_seconds, leave_seconds, calculated_at
		FROM calculated_hours
		WHERE employee_id = $1
		  AND work_date = $2
		  AND company_id = $3
	`

	rec, err := scanHoursRecord(q.QueryRow(ctx, query, employeeID, date, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return hours.CalculatedHoursRecord{}, hours.ErrRecordNotFound
		}
		return hours.CalculatedHoursRecord{}, fmt.Errorf("failed to get calculated hours: %w", err)
	}

	return rec, nil
}

// ListByEmployeeBetween implements hours.HoursRepository.
func (r *hoursRepository) ListByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]hours.CalculatedHoursRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, work_date,
			   total_seconds_worked, weekday_seconds, saturday_seconds, sunday_seconds,
			   public_holiday_seconds, leave_seconds, calculated_at
		FROM calculated_hours
		WHERE employee_id = $1
		  AND work_date >= $2
		  AND work_date <= $3
		  AND company_id = $4
		ORDER BY work_date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, start, end, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculated hours: %w", err)
	}
	defer rows.Close()

	var records []hours.CalculatedHoursRecord
	for rows.Next() {
		rec, err := scanHoursRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan calculated hours: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func scanHoursRecord(row pgx.Row) (hours.CalculatedHoursRecord, error) {
	var rec hours.CalculatedHoursRecord
	var total, weekday, saturday, sunday, holiday, leave int64

	err := row.Scan(
		&rec.ID, &rec.CompanyID, &rec.EmployeeID, &rec.WorkDate,
		&total, &weekday, &saturday, &sunday, &holiday, &leave,
		&rec.CalculatedAt,
	)
	if err != nil {
		return hours.CalculatedHoursRecord{}, err
	}

	rec.TotalHoursWorked = time.Duration(total) * time.Second
	rec.WeekdayHours = time.Duration(weekday) * time.Second
	rec.SaturdayHours = time.Duration(saturday) * time.Second
	rec.SundayHours = time.Duration(sunday) * time.Second
	rec.PublicHolidayHours = time.Duration(holiday) * time.Second
	rec.LeaveHours = time.Duration(leave) * time.Second

	return rec, nil
}
