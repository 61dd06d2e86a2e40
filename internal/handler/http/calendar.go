package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chronosecure/timeclock-backend-go/internal/domain/calendar"
	"github.com/chronosecure/timeclock-backend-go/internal/handler/http/response"
	"github.com/chronosecure/timeclock-backend-go/internal/pkg/validator"
)

type CalendarHandler interface {
	// BulkUpsert handles POST /calendar
	BulkUpsert(w http.ResponseWriter, r *http.Request)
	// ListRange handles GET /calendar
	ListRange(w http.ResponseWriter, r *http.Request)
	// EmployeeCalendar handles GET /employees/{employeeID}/calendar
	EmployeeCalendar(w http.ResponseWriter, r *http.Request)
}

type calendarHandlerImpl struct {
	calendarService calendar.CalendarService
}

func NewCalendarHandler(calendarService calendar.CalendarService) CalendarHandler {
	return &calendarHandlerImpl{calendarService: calendarService}
}

func (h *calendarHandlerImpl) BulkUpsert(w http.ResponseWriter, r *http.Request) {
	var req calendar.BulkUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.calendarService.BulkUpsert(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Calendar updated", result)
}

func (h *calendarHandlerImpl) ListRange(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, ok := dateRangeParams(w, r)
	if !ok {
		return
	}

	result, err := h.calendarService.ListRange(r.Context(), startDate, endDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *calendarHandlerImpl) EmployeeCalendar(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	startDate, endDate, ok := dateRangeParams(w, r)
	if !ok {
		return
	}

	result, err := h.calendarService.EmployeeCalendar(r.Context(), employeeID, startDate, endDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// dateRangeParams validates the start_date/end_date query pair, writing
// the error response itself when invalid.
func dateRangeParams(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")
	if _, ok := validator.IsValidDate(startDate); !ok {
		response.BadRequest(w, "start_date must use YYYY-MM-DD format", nil)
		return "", "", false
	}
	if _, ok := validator.IsValidDate(endDate); !ok {
		response.BadRequest(w, "end_date must use YYYY-MM-DD format", nil)
		return "", "", false
	}
	return startDate, endDate, true
}
