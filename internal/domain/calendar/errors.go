package calendar

import "errors"

var (
	ErrInvalidDayType       = errors.New("invalid day type")
	ErrInvalidPayMultiplier = errors.New("pay multiplier must be >= 0")
	ErrNoDates              = errors.New("at least one date is required")
	ErrInvalidDate          = errors.New("dates must use YYYY-MM-DD format")
)
