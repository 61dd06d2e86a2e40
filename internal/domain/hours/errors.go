package hours

import "errors"

var (
	ErrRecordNotFound    = errors.New("calculated hours record not found")
	ErrInvalidDateRange  = errors.New("start_date must not be after end_date")
	ErrInvalidDate       = errors.New("dates must use YYYY-MM-DD format")
	ErrMissingEmployeeID = errors.New("employee_id is required")
)
