package response

import (
	"errors"
	"net/http"

	"github.com/chronosecure/timeclock-backend-go/internal/domain/calendar"
	"github.com/chronosecure/timeclock-backend-go/internal/domain/employee"
	"github.com/chronosecure/timeclock-backend-go/internal/domain/event"
	"github.com/chronosecure/timeclock-backend-go/internal/domain/hours"
	"github.com/chronosecure/timeclock-backend-go/internal/domain/timeoff"
	"github.com/chronosecure/timeclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Event ingestion errors
	case errors.Is(err, event.ErrUnknownEventType),
		errors.Is(err, event.ErrTimestampOutOfBounds),
		errors.Is(err, event.ErrInvalidConfidence),
		errors.Is(err, event.ErrMissingEmployeeID):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, event.ErrEventNotFound):
		NotFound(w, "Attendance event not found")

	// Employee errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Calendar errors
	case errors.Is(err, calendar.ErrInvalidDayType),
		errors.Is(err, calendar.ErrInvalidPayMultiplier),
		errors.Is(err, calendar.ErrNoDates),
		errors.Is(err, calendar.ErrInvalidDate):
		BadRequest(w, err.Error(), nil)

	// Time-off errors
	case errors.Is(err, timeoff.ErrRequestNotFound):
		NotFound(w, "Time-off request not found")
	case errors.Is(err, timeoff.ErrRequestAlreadyProcessed):
		Conflict(w, "Time-off request already processed")
	case errors.Is(err, timeoff.ErrInvalidDateRange),
		errors.Is(err, timeoff.ErrInvalidDate),
		errors.Is(err, timeoff.ErrMissingEmployeeID),
		errors.Is(err, timeoff.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)

	// Hours errors
	case errors.Is(err, hours.ErrRecordNotFound):
		NotFound(w, "Calculated hours record not found")
	case errors.Is(err, hours.ErrInvalidDateRange),
		errors.Is(err, hours.ErrInvalidDate),
		errors.Is(err, hours.ErrMissingEmployeeID):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
