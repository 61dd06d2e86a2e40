package event

import (
	"context"
	"time"
)

// EventRepository defines data access for the immutable event log.
// All methods are scoped by companyID to prevent cross-company reads.
type EventRepository interface {
	// Create appends a new immutable event
	Create(ctx context.Context, ev AttendanceEvent) (AttendanceEvent, error)

	// ListByEmployeeBetween returns one employee's events in [from, to),
	// ascending by timestamp with insertion order breaking ties (stable)
	ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]AttendanceEvent, error)

	// LatestByEmployeeSince returns the most recent event at or after
	// since, or nil when the lookback window is empty
	LatestByEmployeeSince(ctx context.Context, employeeID string, since time.Time, companyID string) (*AttendanceEvent, error)

	// List returns company events with filters and pagination (admin view)
	List(ctx context.Context, filter EventFilter, companyID string) ([]AttendanceEvent, int64, error)
}
