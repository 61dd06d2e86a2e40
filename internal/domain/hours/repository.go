package hours

import (
	"context"
	"time"
)

// HoursRepository - interface for calculated_hours table. The table
// carries a unique constraint on (employee_id, work_date); Upsert is
// the only write path, so a summary row is never duplicated.
type HoursRepository interface {
	// Upsert inserts or replaces the row for (employee, work date) in a
	// single statement
	Upsert(ctx context.Context, rec CalculatedHoursRecord) (CalculatedHoursRecord, error)

	// GetByEmployeeAndDate returns the summary row, or ErrRecordNotFound
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (CalculatedHoursRecord, error)

	// ListByEmployeeBetween returns summary rows in [start, end] inclusive,
	// ascending by work date
	ListByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]CalculatedHoursRecord, error)
}
