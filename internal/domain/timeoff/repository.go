package timeoff

import (
	"context"
	"time"
)

// RequestRepository - interface for time_off_requests table
type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)

	// GetByID retrieves a request with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Request, error)

	// List returns company requests with filters and pagination
	List(ctx context.Context, filter RequestFilter, companyID string) ([]Request, int64, error)

	// ListOverlapping returns the employee's requests in the given
	// statuses whose [start_date, end_date] overlaps [from, to]
	ListOverlapping(ctx context.Context, employeeID string, statuses []Status, from, to time.Time) ([]Request, error)

	// Update persists status and reason changes
	Update(ctx context.Context, req Request) error

	// HasApprovedLeaveOn reports whether an approved request covers date
	HasApprovedLeaveOn(ctx context.Context, employeeID string, date time.Time) (bool, error)

	// EmployeesOnApprovedLeave returns employee IDs with approved leave
	// covering date, company-wide
	EmployeesOnApprovedLeave(ctx context.Context, companyID string, date time.Time) ([]string, error)

	// CountPendingByCompany counts requests awaiting a decision
	CountPendingByCompany(ctx context.Context, companyID string) (int64, error)

	// InTransaction runs fn atomically: every repository call made
	// through fn's context commits together or not at all
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
