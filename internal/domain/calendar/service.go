package calendar

import (
	"context"
	"time"
)

// CalendarService resolves day classifications and manages overrides.
type CalendarService interface {
	// Resolve classifies (company, date): explicit DayConfig wins
	// outright, else the legacy holiday list, else Saturday/Sunday →
	// WEEKEND, else WORKING_DAY with multiplier 1.0
	Resolve(ctx context.Context, companyID string, date time.Time) (DayResolution, error)

	// BulkUpsert sets the configuration for a set of dates (admin)
	BulkUpsert(ctx context.Context, req BulkUpsertRequest) ([]DayConfigResponse, error)

	// ListRange returns override rows for the company in a date range
	ListRange(ctx context.Context, startDate, endDate string) ([]DayConfigResponse, error)

	// EmployeeCalendar combines classification, approved leave and
	// first-in/last-out attendance per day for one employee
	EmployeeCalendar(ctx context.Context, employeeID, startDate, endDate string) ([]EmployeeCalendarDay, error)
}
