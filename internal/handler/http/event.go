package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/chronosecure/timeclock-backend-go/internal/domain/event"
	"github.com/chronosecure/timeclock-backend-go/internal/handler/http/response"
	"github.com/chronosecure/timeclock-backend-go/internal/pkg/validator"
)

type EventHandler interface {
	// Record handles POST /events
	Record(w http.ResponseWriter, r *http.Request)
	// List handles GET /events
	List(w http.ResponseWriter, r *http.Request)
	// NextExpected handles GET /employees/{employeeID}/next-event
	NextExpected(w http.ResponseWriter, r *http.Request)
}

type eventHandlerImpl struct {
	eventService event.EventService
}

func NewEventHandler(eventService event.EventService) EventHandler {
	return &eventHandlerImpl{eventService: eventService}
}

func (h *eventHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	var req event.RecordEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.eventService.RecordEvent(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Event recorded", result)
}

func (h *eventHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := event.EventFilter{
		Page:      queryInt(r, "page", 1),
		Limit:     queryInt(r, "limit", 20),
		SortOrder: r.URL.Query().Get("sort_order"),
	}

	if v := r.URL.Query().Get("employee_id"); v != "" {
		if !validator.IsValidUUID(v) {
			response.BadRequest(w, "employee_id must be a UUID", nil)
			return
		}
		filter.EmployeeID = &v
	}
	if v := r.URL.Query().Get("start_date"); v != "" {
		if _, ok := validator.IsValidDate(v); !ok {
			response.BadRequest(w, "start_date must use YYYY-MM-DD format", nil)
			return
		}
		filter.StartDate = &v
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		if _, ok := validator.IsValidDate(v); !ok {
			response.BadRequest(w, "end_date must use YYYY-MM-DD format", nil)
			return
		}
		filter.EndDate = &v
	}

	result, err := h.eventService.ListEvents(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *eventHandlerImpl) NextExpected(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if validator.IsEmpty(employeeID) {
		response.BadRequest(w, "employeeID is required", nil)
		return
	}

	next, err := h.eventService.GetNextExpectedEvent(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, event.NextEventResponse{NextExpectedEvent: string(next)})
}

// queryInt reads an integer query parameter with a fallback.
func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
