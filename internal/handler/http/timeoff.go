package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chronosecure/timeclock-backend-go/internal/domain/timeoff"
	"github.com/chronosecure/timeclock-backend-go/internal/handler/http/response"
	"github.com/chronosecure/timeclock-backend-go/internal/pkg/validator"
)

type TimeoffHandler interface {
	// Create handles POST /time-off
	Create(w http.ResponseWriter, r *http.Request)
	// List handles GET /time-off
	List(w http.ResponseWriter, r *http.Request)
	// Approve handles POST /time-off/{requestID}/approve
	Approve(w http.ResponseWriter, r *http.Request)
	// Reject handles POST /time-off/{requestID}/reject
	Reject(w http.ResponseWriter, r *http.Request)
}

type timeoffHandlerImpl struct {
	requestService timeoff.RequestService
}

func NewTimeoffHandler(requestService timeoff.RequestService) TimeoffHandler {
	return &timeoffHandlerImpl{requestService: requestService}
}

func (h *timeoffHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req timeoff.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.requestService.CreateRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Time-off request submitted", result)
}

func (h *timeoffHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := timeoff.RequestFilter{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 20),
	}

	if v := r.URL.Query().Get("employee_id"); v != "" {
		if !validator.IsValidUUID(v) {
			response.BadRequest(w, "employee_id must be a UUID", nil)
			return
		}
		filter.EmployeeID = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		filter.Status = &v
	}

	result, err := h.requestService.ListRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timeoffHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	result, err := h.requestService.ApproveRequest(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timeoffHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	result, err := h.requestService.RejectRequest(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
