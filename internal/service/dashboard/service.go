package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/sync/errgroup"

	"github.com/chronosecure/timeclock-backend-go/internal/domain/dashboard"
	"github.com/chronosecure/timeclock-backend-go/internal/domain/event"
	"github.com/chronosecure/timeclock-backend-go/internal/domain/timeoff"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	timeoff.RequestRepository
	loc *time.Location
	now func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository, timeoffRepo timeoff.RequestRepository, loc *time.Location) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		RequestRepository:   timeoffRepo,
		loc:                 loc,
		now:                 func() time.Time { return time.Now().UTC() },
	}
}

// getCompanyID extracts company_id from JWT claims
func (s *DashboardServiceImpl) getCompanyID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id not found in claims")
	}
	return companyID, nil
}

// GetTodayStats implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetTodayStats(ctx context.Context) (*dashboard.TodayStatsResponse, error) {
	companyID, err := s.getCompanyID(ctx)
	if err != nil {
		return nil, err
	}
	return s.GetTodayStatsForCompany(ctx, companyID)
}

// GetTodayStatsForCompany implements dashboard.DashboardService.
// 4 goroutines, each with 1 DB query.
func (s *DashboardServiceImpl) GetTodayStatsForCompany(ctx context.Context, companyID string) (*dashboard.TodayStatsResponse, error) {
	nowLocal := s.now().In(s.loc)
	dayStart := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, s.loc)
	from, to := dayStart.UTC(), dayStart.AddDate(0, 0, 1).UTC()
	today := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, time.UTC)

	var (
		total        int64
		latestEvents []event.AttendanceEvent
		onLeaveIDs   []string
		pending      int64
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.CountActiveEmployees(gCtx, companyID)
		if err != nil {
			return fmt.Errorf("failed to count active employees: %w", err)
		}
		total = n
		return nil
	})

	g.Go(func() error {
		events, err := s.LatestEventPerEmployee(gCtx, companyID, from, to)
		if err != nil {
			return fmt.Errorf("failed to load latest events: %w", err)
		}
		latestEvents = events
		return nil
	})

	g.Go(func() error {
		ids, err := s.EmployeesOnApprovedLeave(gCtx, companyID, today)
		if err != nil {
			return fmt.Errorf("failed to load employees on leave: %w", err)
		}
		onLeaveIDs = ids
		return nil
	})

	g.Go(func() error {
		n, err := s.CountPendingByCompany(gCtx, companyID)
		if err != nil {
			return fmt.Errorf("failed to count pending requests: %w", err)
		}
		pending = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := reduce(total, latestEvents, onLeaveIDs)
	stats.PendingRequests = pending
	stats.Date = nowLocal.Format("2006-01-02")
	return stats, nil
}

// reduce classifies each employee by their latest event today. Absent is
// the remainder, floored at zero, so the four statuses always reconcile
// with the headcount.
func reduce(total int64, latestEvents []event.AttendanceEvent, onLeaveIDs []string) *dashboard.TodayStatsResponse {
	stats := &dashboard.TodayStatsResponse{TotalEmployees: total}

	clockedIn := make(map[string]bool, len(latestEvents))
	for _, ev := range latestEvents {
		switch ev.EventType {
		case event.EventTypeClockIn, event.EventTypeBreakEnd:
			stats.ClockedIn++
			clockedIn[ev.EmployeeID] = true
		case event.EventTypeClockOut, event.EventTypeBreakStart:
			stats.ClockedOut++
			clockedIn[ev.EmployeeID] = true // has attendance today, not on leave
		}
	}

	for _, id := range onLeaveIDs {
		if !clockedIn[id] {
			stats.OnLeave++
		}
	}

	stats.Absent = total - stats.ClockedIn - stats.ClockedOut - stats.OnLeave
	if stats.Absent < 0 {
		stats.Absent = 0
	}

	return stats
}
