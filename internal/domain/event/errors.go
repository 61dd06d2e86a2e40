package event

import "errors"

// Event domain errors
var (
	// Ingestion errors
	ErrUnknownEventType     = errors.New("unknown event type")
	ErrTimestampOutOfBounds = errors.New("event timestamp outside plausible bounds")
	ErrInvalidConfidence    = errors.New("confidence score must be between 0.0 and 1.0")
	ErrMissingEmployeeID    = errors.New("employee_id is required")

	// General errors
	ErrEventNotFound = errors.New("attendance event not found")
)
