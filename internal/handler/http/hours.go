package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chronosecure/timeclock-backend-go/internal/domain/hours"
	"github.com/chronosecure/timeclock-backend-go/internal/handler/http/response"
	"github.com/chronosecure/timeclock-backend-go/internal/pkg/validator"
)

type HoursHandler interface {
	// Recalculate handles POST /hours/recalculate
	Recalculate(w http.ResponseWriter, r *http.Request)
	// ListRecords handles GET /employees/{employeeID}/hours
	ListRecords(w http.ResponseWriter, r *http.Request)
	// ReconstructDay handles GET /employees/{employeeID}/reconstruction
	ReconstructDay(w http.ResponseWriter, r *http.Request)
}

type hoursHandlerImpl struct {
	hoursService hours.HoursService
}

func NewHoursHandler(hoursService hours.HoursService) HoursHandler {
	return &hoursHandlerImpl{hoursService: hoursService}
}

func (h *hoursHandlerImpl) Recalculate(w http.ResponseWriter, r *http.Request) {
	var req hours.RecalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	companyID := companyIDFromRequest(r)
	if companyID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	result, err := h.hoursService.RecalculateRange(r.Context(), companyID, req.EmployeeID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := hours.RangeReportResponse{
		Records:  make([]hours.RecordResponse, 0, len(result.Records)),
		Failures: make([]hours.DayFailureResponse, 0, len(result.Failures)),
	}
	for _, rec := range result.Records {
		out.Records = append(out.Records, rec.ToResponse())
	}
	for _, f := range result.Failures {
		out.Failures = append(out.Failures, hours.DayFailureResponse{
			Date:  f.Date.Format("2006-01-02"),
			Error: f.Err.Error(),
		})
	}

	response.Success(w, out)
}

func (h *hoursHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	companyID := companyIDFromRequest(r)
	if companyID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	start, ok := validator.IsValidDate(r.URL.Query().Get("start_date"))
	if !ok {
		response.BadRequest(w, "start_date must use YYYY-MM-DD format", nil)
		return
	}
	end, ok := validator.IsValidDate(r.URL.Query().Get("end_date"))
	if !ok {
		response.BadRequest(w, "end_date must use YYYY-MM-DD format", nil)
		return
	}

	records, err := h.hoursService.ListRecords(r.Context(), companyID, employeeID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]hours.RecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.ToResponse())
	}

	response.Success(w, out)
}

func (h *hoursHandlerImpl) ReconstructDay(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	companyID := companyIDFromRequest(r)
	if companyID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	date, ok := validator.IsValidDate(r.URL.Query().Get("date"))
	if !ok {
		response.BadRequest(w, "date must use YYYY-MM-DD format", nil)
		return
	}

	rec, err := h.hoursService.ReconstructDay(r.Context(), companyID, employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, hours.ReconstructionResponse{
		EmployeeID:     employeeID,
		Date:           date.Format("2006-01-02"),
		WorkedDuration: rec.WorkedDuration.Hours(),
		BreakDuration:  rec.BreakDuration.Hours(),
		Anomalies:      rec.Anomalies,
	})
}
