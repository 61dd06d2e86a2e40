package timeoff

import "errors"

var (
	ErrRequestNotFound         = errors.New("time-off request not found")
	ErrRequestAlreadyProcessed = errors.New("time-off request already processed")
	ErrInvalidDateRange        = errors.New("start_date must not be after end_date")
	ErrInvalidDate             = errors.New("dates must use YYYY-MM-DD format")
	ErrMissingEmployeeID       = errors.New("employee_id is required")
	ErrInvalidStatus           = errors.New("status must be PENDING, APPROVED or REJECTED")
)
