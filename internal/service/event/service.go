package event

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/chronosecure/timeclock-backend-go/internal/domain/dashboard"
	"github.com/chronosecure/timeclock-backend-go/internal/domain/employee"
	"github.com/chronosecure/timeclock-backend-go/internal/domain/event"
	"github.com/chronosecure/timeclock-backend-go/internal/domain/hours"
	"github.com/chronosecure/timeclock-backend-go/internal/domain/timeoff"
	"github.com/chronosecure/timeclock-backend-go/internal/pkg/sse"
)

// nextEventLookback bounds how far back the predictor reads. An event
// older than a day says nothing about the current shift.
const nextEventLookback = 24 * time.Hour

type EventServiceImpl struct {
	event.EventRepository
	employee.EmployeeRepository
	timeoffService   timeoff.RequestService
	hoursService     hours.HoursService
	dashboardService dashboard.DashboardService
	hub              *sse.Hub
	loc              *time.Location
}

func NewEventService(
	eventRepo event.EventRepository,
	employeeRepo employee.EmployeeRepository,
	timeoffService timeoff.RequestService,
	hoursService hours.HoursService,
	dashboardService dashboard.DashboardService,
	hub *sse.Hub,
	loc *time.Location,
) event.EventService {
	return &EventServiceImpl{
		EventRepository:    eventRepo,
		EmployeeRepository: employeeRepo,
		timeoffService:     timeoffService,
		hoursService:       hoursService,
		dashboardService:   dashboardService,
		hub:                hub,
		loc:                loc,
	}
}

func claimsFromContext(ctx context.Context) (companyID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

// RecordEvent implements event.EventService.
func (s *EventServiceImpl) RecordEvent(ctx context.Context, req event.RecordEventRequest) (event.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return event.EventResponse{}, err
	}

	companyID, err := claimsFromContext(ctx)
	if err != nil {
		return event.EventResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		return event.EventResponse{}, err
	}

	created, err := s.EventRepository.Create(ctx, event.AttendanceEvent{
		ID:              uuid.NewString(),
		CompanyID:       companyID,
		EmployeeID:      req.EmployeeID,
		EventType:       event.EventType(req.EventType),
		Timestamp:       req.EventTime(),
		DeviceID:        req.DeviceID,
		ConfidenceScore: req.ConfidenceScore,
		IsOfflineSync:   req.IsOfflineSync,
	})
	if err != nil {
		return event.EventResponse{}, fmt.Errorf("failed to store attendance event: %w", err)
	}

	// The event is durable from here on. Reactions are best-effort: a
	// failing sweep or recompute is logged, never surfaced, because the
	// caller's fact was already accepted.
	s.runReactions(ctx, created)

	return toResponse(created), nil
}

func (s *EventServiceImpl) runReactions(ctx context.Context, ev event.AttendanceEvent) {
	localDay := ev.Timestamp.In(s.loc)

	if ev.EventType == event.EventTypeClockIn {
		if n, err := s.timeoffService.RejectConflicting(ctx, ev.EmployeeID, localDay); err != nil {
			slog.Warn("time-off conflict sweep failed",
				"employee_id", ev.EmployeeID, "event_id", ev.ID, "error", err)
		} else if n > 0 {
			slog.Info("auto-rejected conflicting time-off requests",
				"employee_id", ev.EmployeeID, "count", n)
		}
	}

	if _, err := s.hoursService.CalculateHoursForDate(ctx, ev.CompanyID, ev.EmployeeID, localDay); err != nil {
		slog.Warn("same-day hours recompute failed",
			"employee_id", ev.EmployeeID, "event_id", ev.ID, "error", err)
	}

	if s.hub.SubscriberCount(ev.CompanyID) > 0 {
		stats, err := s.dashboardService.GetTodayStatsForCompany(ctx, ev.CompanyID)
		if err != nil {
			slog.Warn("dashboard stats refresh failed",
				"company_id", ev.CompanyID, "error", err)
			return
		}
		s.hub.Publish(ev.CompanyID, sse.Event{
			CompanyID: ev.CompanyID,
			Event:     "dashboard_stats",
			Data:      stats,
		})
	}
}

// GetNextExpectedEvent implements event.EventService.
func (s *EventServiceImpl) GetNextExpectedEvent(ctx context.Context, employeeID string) (event.EventType, error) {
	companyID, err := claimsFromContext(ctx)
	if err != nil {
		return "", err
	}

	since := time.Now().UTC().Add(-nextEventLookback)
	latest, err := s.EventRepository.LatestByEmployeeSince(ctx, employeeID, since, companyID)
	if err != nil {
		return "", fmt.Errorf("failed to load latest event: %w", err)
	}
	if latest == nil {
		return event.EventTypeClockIn, nil
	}

	switch latest.EventType {
	case event.EventTypeClockIn:
		// Clocking out straight away is also legal; suggesting the break
		// first matches how shifts actually run.
		return event.EventTypeBreakStart, nil
	case event.EventTypeBreakStart:
		return event.EventTypeBreakEnd, nil
	case event.EventTypeBreakEnd:
		return event.EventTypeClockOut, nil
	default: // CLOCK_OUT
		return event.EventTypeClockIn, nil
	}
}

// ListEvents implements event.EventService.
func (s *EventServiceImpl) ListEvents(ctx context.Context, filter event.EventFilter) (event.ListEventsResponse, error) {
	companyID, err := claimsFromContext(ctx)
	if err != nil {
		return event.ListEventsResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.SortOrder != "asc" {
		filter.SortOrder = "desc"
	}

	events, total, err := s.EventRepository.List(ctx, filter, companyID)
	if err != nil {
		return event.ListEventsResponse{}, fmt.Errorf("failed to list events: %w", err)
	}

	out := event.ListEventsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Events:     make([]event.EventResponse, 0, len(events)),
	}
	for _, ev := range events {
		out.Events = append(out.Events, toResponse(ev))
	}
	return out, nil
}

func toResponse(ev event.AttendanceEvent) event.EventResponse {
	return event.EventResponse{
		ID:              ev.ID,
		EmployeeID:      ev.EmployeeID,
		EmployeeName:    ev.EmployeeName,
		EventType:       string(ev.EventType),
		Timestamp:       ev.Timestamp.Format(time.RFC3339),
		DeviceID:        ev.DeviceID,
		ConfidenceScore: ev.ConfidenceScore,
		IsOfflineSync:   ev.IsOfflineSync,
	}
}
