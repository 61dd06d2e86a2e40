package timeoff

import "time"

// Status is the approval state of a time-off request.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// autoRejectMarker is appended (never overwritten) to the reason when
// the conflict sweep rejects a request because the employee clocked in.
const AutoRejectMarker = " [Auto-rejected: Attendance Logged]"

// Request is a time-off request over an inclusive date range.
type Request struct {
	ID         string
	CompanyID  string
	EmployeeID string
	StartDate  time.Time // inclusive, date only
	EndDate    time.Time // inclusive, date only
	Reason     string
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
}

// Overlaps reports whether the request covers any day of [from, to].
func (r Request) Overlaps(from, to time.Time) bool {
	return !r.StartDate.After(to) && !r.EndDate.Before(from)
}

// Covers reports whether the request covers the single date.
func (r Request) Covers(date time.Time) bool {
	return r.Overlaps(date, date)
}
