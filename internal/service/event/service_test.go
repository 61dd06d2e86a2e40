package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronosecure/timeclock-backend-go/internal/domain/dashboard"
	"github.com/chronosecure/timeclock-backend-go/internal/domain/employee"
	"github.com/chronosecure/timeclock-backend-go/internal/domain/event"
	"github.com/chronosecure/timeclock-backend-go/internal/domain/hours"
	"github.com/chronosecure/timeclock-backend-go/internal/domain/timeoff"
	"github.com/chronosecure/timeclock-backend-go/internal/pkg/sse"
)

func authedCtx(t *testing.T, companyID string) context.Context {
	t.Helper()
	token, err := jwt.NewBuilder().
		Claim("company_id", companyID).
		Claim("employee_id", "emp-1").
		Build()
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type fakeEventRepo struct {
	events []event.AttendanceEvent
}

func (f *fakeEventRepo) Create(_ context.Context, ev event.AttendanceEvent) (event.AttendanceEvent, error) {
	ev.CreatedAt = time.Now().UTC()
	f.events = append(f.events, ev)
	return ev, nil
}

func (f *fakeEventRepo) ListByEmployeeBetween(_ context.Context, employeeID string, from, to time.Time, companyID string) ([]event.AttendanceEvent, error) {
	var out []event.AttendanceEvent
	for _, ev := range f.events {
		if ev.EmployeeID == employeeID && ev.CompanyID == companyID &&
			!ev.Timestamp.Before(from) && ev.Timestamp.Before(to) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) LatestByEmployeeSince(_ context.Context, employeeID string, since time.Time, companyID string) (*event.AttendanceEvent, error) {
	var latest *event.AttendanceEvent
	for i := range f.events {
		ev := f.events[i]
		if ev.EmployeeID != employeeID || ev.CompanyID != companyID || ev.Timestamp.Before(since) {
			continue
		}
		if latest == nil || !ev.Timestamp.Before(latest.Timestamp) {
			latest = &f.events[i]
		}
	}
	return latest, nil
}

func (f *fakeEventRepo) List(_ context.Context, _ event.EventFilter, companyID string) ([]event.AttendanceEvent, int64, error) {
	var out []event.AttendanceEvent
	for _, ev := range f.events {
		if ev.CompanyID == companyID {
			out = append(out, ev)
		}
	}
	return out, int64(len(out)), nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string, companyID string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok || emp.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) ListActiveByCompany(_ context.Context, _ string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) CountActiveByCompany(_ context.Context, _ string) (int64, error) {
	return int64(len(f.employees)), nil
}

func (f *fakeEmployeeRepo) ListCompanyIDs(_ context.Context) ([]string, error) {
	return nil, nil
}

type fakeTimeoffService struct {
	sweeps   []string // employee IDs swept
	sweepErr error
}

func (f *fakeTimeoffService) CreateRequest(_ context.Context, _ timeoff.CreateRequest) (timeoff.RequestResponse, error) {
	return timeoff.RequestResponse{}, nil
}

func (f *fakeTimeoffService) ListRequests(_ context.Context, _ timeoff.RequestFilter) (timeoff.ListRequestsResponse, error) {
	return timeoff.ListRequestsResponse{}, nil
}

func (f *fakeTimeoffService) ApproveRequest(_ context.Context, _ string) (timeoff.RequestResponse, error) {
	return timeoff.RequestResponse{}, nil
}

func (f *fakeTimeoffService) RejectRequest(_ context.Context, _ string) (timeoff.RequestResponse, error) {
	return timeoff.RequestResponse{}, nil
}

func (f *fakeTimeoffService) RejectConflicting(_ context.Context, employeeID string, _ time.Time) (int, error) {
	if f.sweepErr != nil {
		return 0, f.sweepErr
	}
	f.sweeps = append(f.sweeps, employeeID)
	return 1, nil
}

type fakeHoursService struct {
	recomputes []string // employeeID|YYYY-MM-DD
	err        error
}

func (f *fakeHoursService) ReconstructDay(_ context.Context, _, _ string, _ time.Time) (hours.DayReconstruction, error) {
	return hours.DayReconstruction{}, nil
}

func (f *fakeHoursService) CalculateHoursForDate(_ context.Context, _, employeeID string, date time.Time) (hours.CalculatedHoursRecord, error) {
	if f.err != nil {
		return hours.CalculatedHoursRecord{}, f.err
	}
	f.recomputes = append(f.recomputes, employeeID+"|"+date.Format("2006-01-02"))
	return hours.CalculatedHoursRecord{}, nil
}

func (f *fakeHoursService) RecalculateRange(_ context.Context, _, _ string, _, _ time.Time) (hours.RangeResult, error) {
	return hours.RangeResult{}, nil
}

func (f *fakeHoursService) ListRecords(_ context.Context, _, _ string, _, _ time.Time) ([]hours.CalculatedHoursRecord, error) {
	return nil, nil
}

type fakeDashboardService struct {
	stats *dashboard.TodayStatsResponse
	calls int
}

func (f *fakeDashboardService) GetTodayStats(_ context.Context) (*dashboard.TodayStatsResponse, error) {
	return f.stats, nil
}

func (f *fakeDashboardService) GetTodayStatsForCompany(_ context.Context, _ string) (*dashboard.TodayStatsResponse, error) {
	f.calls++
	return f.stats, nil
}

type eventTestEnv struct {
	svc     event.EventService
	events  *fakeEventRepo
	timeoff *fakeTimeoffService
	hours   *fakeHoursService
	dash    *fakeDashboardService
	hub     *sse.Hub
}

func newEventTestEnv() *eventTestEnv {
	env := &eventTestEnv{
		events:  &fakeEventRepo{},
		timeoff: &fakeTimeoffService{},
		hours:   &fakeHoursService{},
		dash:    &fakeDashboardService{stats: &dashboard.TodayStatsResponse{TotalEmployees: 3}},
		hub:     sse.NewHub(),
	}
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", CompanyID: "comp-1", FullName: "Ava Chen", IsActive: true},
	}}
	env.svc = NewEventService(env.events, employees, env.timeoff, env.hours, env.dash, env.hub, time.UTC)
	return env
}

func strPtr(s string) *string { return &s }

func TestRecordEvent(t *testing.T) {
	env := newEventTestEnv()
	ts := time.Now().UTC().Add(-2 * time.Hour).Format(time.RFC3339)

	resp, err := env.svc.RecordEvent(authedCtx(t, "comp-1"), event.RecordEventRequest{
		EmployeeID: "emp-1",
		EventType:  string(event.EventTypeClockIn),
		Timestamp:  &ts,
		DeviceID:   strPtr("kiosk-7"),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, string(event.EventTypeClockIn), resp.EventType)
	require.Len(t, env.events.events, 1)
	assert.Equal(t, "comp-1", env.events.events[0].CompanyID, "company comes from the token, not the payload")
}

func TestRecordEvent_Validation(t *testing.T) {
	env := newEventTestEnv()
	ctx := authedCtx(t, "comp-1")

	_, err := env.svc.RecordEvent(ctx, event.RecordEventRequest{
		EmployeeID: "emp-1", EventType: "LUNCH",
	})
	assert.ErrorIs(t, err, event.ErrUnknownEventType)

	_, err = env.svc.RecordEvent(ctx, event.RecordEventRequest{
		EventType: string(event.EventTypeClockIn),
	})
	assert.ErrorIs(t, err, event.ErrMissingEmployeeID)

	future := time.Now().Add(2 * time.Hour).Format(time.RFC3339)
	_, err = env.svc.RecordEvent(ctx, event.RecordEventRequest{
		EmployeeID: "emp-1", EventType: string(event.EventTypeClockIn), Timestamp: &future,
	})
	assert.ErrorIs(t, err, event.ErrTimestampOutOfBounds)

	bad := 1.4
	_, err = env.svc.RecordEvent(ctx, event.RecordEventRequest{
		EmployeeID: "emp-1", EventType: string(event.EventTypeClockIn), ConfidenceScore: &bad,
	})
	assert.ErrorIs(t, err, event.ErrInvalidConfidence)

	assert.Empty(t, env.events.events, "rejected events are never stored")
}

func TestRecordEvent_UnknownEmployee(t *testing.T) {
	env := newEventTestEnv()

	_, err := env.svc.RecordEvent(authedCtx(t, "comp-1"), event.RecordEventRequest{
		EmployeeID: "emp-404", EventType: string(event.EventTypeClockIn),
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestRecordEvent_ClockInTriggersConflictSweepAndRecompute(t *testing.T) {
	env := newEventTestEnv()

	_, err := env.svc.RecordEvent(authedCtx(t, "comp-1"), event.RecordEventRequest{
		EmployeeID: "emp-1", EventType: string(event.EventTypeClockIn),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"emp-1"}, env.timeoff.sweeps)
	require.Len(t, env.hours.recomputes, 1)
	assert.Contains(t, env.hours.recomputes[0], "emp-1|")
}

func TestRecordEvent_ClockOutSkipsConflictSweep(t *testing.T) {
	env := newEventTestEnv()

	_, err := env.svc.RecordEvent(authedCtx(t, "comp-1"), event.RecordEventRequest{
		EmployeeID: "emp-1", EventType: string(event.EventTypeClockOut),
	})
	require.NoError(t, err)

	assert.Empty(t, env.timeoff.sweeps, "only clock-in contradicts planned absence")
	assert.Len(t, env.hours.recomputes, 1, "every event type refreshes the day's summary")
}

func TestRecordEvent_ReactionFailuresAreSwallowed(t *testing.T) {
	env := newEventTestEnv()
	env.timeoff.sweepErr = errors.New("timeoff store down")
	env.hours.err = errors.New("summary store down")

	resp, err := env.svc.RecordEvent(authedCtx(t, "comp-1"), event.RecordEventRequest{
		EmployeeID: "emp-1", EventType: string(event.EventTypeClockIn),
	})
	require.NoError(t, err, "the event was stored; reactions must not undo that")
	assert.NotEmpty(t, resp.ID)
	assert.Len(t, env.events.events, 1)
}

func TestRecordEvent_BroadcastsOnlyWithSubscribers(t *testing.T) {
	env := newEventTestEnv()
	ctx := authedCtx(t, "comp-1")

	_, err := env.svc.RecordEvent(ctx, event.RecordEventRequest{
		EmployeeID: "emp-1", EventType: string(event.EventTypeClockIn),
	})
	require.NoError(t, err)
	assert.Zero(t, env.dash.calls, "no dashboards open, no aggregation work")

	ch, cleanup := env.hub.Subscribe("comp-1")
	defer cleanup()

	_, err = env.svc.RecordEvent(ctx, event.RecordEventRequest{
		EmployeeID: "emp-1", EventType: string(event.EventTypeClockOut),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, env.dash.calls)

	select {
	case got := <-ch:
		assert.Equal(t, "dashboard_stats", got.Event)
	default:
		t.Fatal("expected a dashboard_stats broadcast")
	}
}

func TestGetNextExpectedEvent(t *testing.T) {
	env := newEventTestEnv()
	ctx := authedCtx(t, "comp-1")

	next, err := env.svc.GetNextExpectedEvent(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, event.EventTypeClockIn, next, "no history suggests clocking in")

	transitions := []struct {
		latest event.EventType
		want   event.EventType
	}{
		{event.EventTypeClockIn, event.EventTypeBreakStart},
		{event.EventTypeBreakStart, event.EventTypeBreakEnd},
		{event.EventTypeBreakEnd, event.EventTypeClockOut},
		{event.EventTypeClockOut, event.EventTypeClockIn},
	}
	for _, tr := range transitions {
		env.events.events = []event.AttendanceEvent{{
			ID: "e1", CompanyID: "comp-1", EmployeeID: "emp-1",
			EventType: tr.latest, Timestamp: time.Now().UTC().Add(-time.Hour),
		}}
		next, err := env.svc.GetNextExpectedEvent(ctx, "emp-1")
		require.NoError(t, err)
		assert.Equal(t, tr.want, next, "after %s", tr.latest)
	}
}

func TestGetNextExpectedEvent_IgnoresStaleHistory(t *testing.T) {
	env := newEventTestEnv()

	// Yesterday's unterminated shift must not push today's suggestion
	// past CLOCK_IN.
	env.events.events = []event.AttendanceEvent{{
		ID: "e1", CompanyID: "comp-1", EmployeeID: "emp-1",
		EventType: event.EventTypeClockIn, Timestamp: time.Now().UTC().Add(-30 * time.Hour),
	}}

	next, err := env.svc.GetNextExpectedEvent(authedCtx(t, "comp-1"), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, event.EventTypeClockIn, next)
}
