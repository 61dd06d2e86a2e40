package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/chronosecure/timeclock-backend-go/internal/domain/dashboard"
	"github.com/chronosecure/timeclock-backend-go/internal/handler/http/response"
	"github.com/chronosecure/timeclock-backend-go/internal/pkg/jwt"
	"github.com/chronosecure/timeclock-backend-go/internal/pkg/sse"
)

type DashboardHandler interface {
	// GetTodayStats handles GET /dashboard/today
	GetTodayStats(w http.ResponseWriter, r *http.Request)
	// GetSSEToken handles POST /dashboard/sse-token
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	// Stream handles GET /dashboard/stream
	Stream(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
	jwtService       jwt.Service
	hub              *sse.Hub
}

func NewDashboardHandler(dashboardService dashboard.DashboardService, jwtService jwt.Service, hub *sse.Hub) DashboardHandler {
	return &dashboardHandlerImpl{
		dashboardService: dashboardService,
		jwtService:       jwtService,
		hub:              hub,
	}
}

func (h *dashboardHandlerImpl) GetTodayStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetTodayStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetSSEToken generates a short-lived token for SSE connections
func (h *dashboardHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromRequest(r)
	companyID := companyIDFromRequest(r)
	if userID == "" || companyID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(userID, companyID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, map[string]interface{}{
		"token":      token,
		"expires_in": expiresIn,
	})
}

// Stream pushes live dashboard stats over SSE. The token rides a query
// parameter because EventSource cannot set headers.
func (h *dashboardHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	_, companyID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(companyID)
	defer cleanup()

	// First frame carries the current stats so the dashboard renders
	// without waiting for the next clock event.
	if stats, err := h.dashboardService.GetTodayStatsForCompany(r.Context(), companyID); err == nil {
		if data, err := json.Marshal(stats); err == nil {
			fmt.Fprintf(w, "event: dashboard_stats\ndata: %s\n\n", data)
		}
	}
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(ev.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
