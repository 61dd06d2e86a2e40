package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronosecure/timeclock-backend-go/internal/domain/calendar"
	"github.com/chronosecure/timeclock-backend-go/internal/domain/event"
	"github.com/chronosecure/timeclock-backend-go/internal/domain/timeoff"
)

func authedCtx(t *testing.T, companyID string) context.Context {
	t.Helper()
	token, err := jwt.NewBuilder().
		Claim("company_id", companyID).
		Claim("employee_id", "emp-1").
		Claim("role", "admin").
		Build()
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type fakeDayConfigRepo struct {
	configs map[string]calendar.DayConfig // YYYY-MM-DD
}

func newFakeDayConfigRepo() *fakeDayConfigRepo {
	return &fakeDayConfigRepo{configs: make(map[string]calendar.DayConfig)}
}

func (f *fakeDayConfigRepo) GetByCompanyAndDate(_ context.Context, _ string, date time.Time) (*calendar.DayConfig, error) {
	if cfg, ok := f.configs[date.Format("2006-01-02")]; ok {
		return &cfg, nil
	}
	return nil, nil
}

func (f *fakeDayConfigRepo) ListByCompanyBetween(_ context.Context, _ string, start, end time.Time) ([]calendar.DayConfig, error) {
	var out []calendar.DayConfig
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if cfg, ok := f.configs[d.Format("2006-01-02")]; ok {
			out = append(out, cfg)
		}
	}
	return out, nil
}

func (f *fakeDayConfigRepo) Upsert(_ context.Context, cfg calendar.DayConfig) (calendar.DayConfig, error) {
	key := cfg.Date.Format("2006-01-02")
	if existing, ok := f.configs[key]; ok {
		cfg.ID = existing.ID
	}
	f.configs[key] = cfg
	return cfg, nil
}

type fakeHolidayRepo struct {
	dates map[string]bool
}

func (f *fakeHolidayRepo) Exists(_ context.Context, _ string, date time.Time) (bool, error) {
	return f.dates[date.Format("2006-01-02")], nil
}

type fakeEventRepo struct {
	events []event.AttendanceEvent
}

func (f *fakeEventRepo) Create(_ context.Context, ev event.AttendanceEvent) (event.AttendanceEvent, error) {
	return ev, nil
}

func (f *fakeEventRepo) ListByEmployeeBetween(_ context.Context, employeeID string, from, to time.Time, _ string) ([]event.AttendanceEvent, error) {
	var out []event.AttendanceEvent
	for _, ev := range f.events {
		if ev.EmployeeID == employeeID && !ev.Timestamp.Before(from) && ev.Timestamp.Before(to) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) LatestByEmployeeSince(_ context.Context, _ string, _ time.Time, _ string) (*event.AttendanceEvent, error) {
	return nil, nil
}

func (f *fakeEventRepo) List(_ context.Context, _ event.EventFilter, _ string) ([]event.AttendanceEvent, int64, error) {
	return nil, 0, nil
}

type fakeTimeoffRepo struct {
	requests []timeoff.Request
}

func (f *fakeTimeoffRepo) Create(_ context.Context, req timeoff.Request) (timeoff.Request, error) {
	return req, nil
}

func (f *fakeTimeoffRepo) GetByID(_ context.Context, _ string, _ string) (timeoff.Request, error) {
	return timeoff.Request{}, timeoff.ErrRequestNotFound
}

func (f *fakeTimeoffRepo) List(_ context.Context, _ timeoff.RequestFilter, _ string) ([]timeoff.Request, int64, error) {
	return nil, 0, nil
}

func (f *fakeTimeoffRepo) ListOverlapping(_ context.Context, employeeID string, statuses []timeoff.Status, from, to time.Time) ([]timeoff.Request, error) {
	var out []timeoff.Request
	for _, req := range f.requests {
		if req.EmployeeID != employeeID || !req.Overlaps(from, to) {
			continue
		}
		for _, s := range statuses {
			if req.Status == s {
				out = append(out, req)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeTimeoffRepo) Update(_ context.Context, _ timeoff.Request) error { return nil }

func (f *fakeTimeoffRepo) HasApprovedLeaveOn(_ context.Context, _ string, _ time.Time) (bool, error) {
	return false, nil
}

func (f *fakeTimeoffRepo) EmployeesOnApprovedLeave(_ context.Context, _ string, _ time.Time) ([]string, error) {
	return nil, nil
}

func (f *fakeTimeoffRepo) CountPendingByCompany(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

func (f *fakeTimeoffRepo) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type calendarTestEnv struct {
	svc      calendar.CalendarService
	configs  *fakeDayConfigRepo
	holidays *fakeHolidayRepo
	events   *fakeEventRepo
	timeoff  *fakeTimeoffRepo
}

func newCalendarTestEnv() *calendarTestEnv {
	env := &calendarTestEnv{
		configs:  newFakeDayConfigRepo(),
		holidays: &fakeHolidayRepo{dates: make(map[string]bool)},
		events:   &fakeEventRepo{},
		timeoff:  &fakeTimeoffRepo{},
	}
	env.svc = NewCalendarService(env.configs, env.holidays, env.events, env.timeoff, time.UTC)
	// Pin "today" so FUTURE classification is deterministic.
	env.svc.(*CalendarServiceImpl).now = func() time.Time {
		return time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	}
	return env
}

func TestResolve_Precedence(t *testing.T) {
	env := newCalendarTestEnv()
	ctx := context.Background()

	// 2026-03-07 is a Saturday; an explicit override beats both the
	// legacy list and the weekend heuristic.
	env.configs.configs["2026-03-07"] = calendar.DayConfig{
		ID: "cfg-1", CompanyID: "comp-1",
		Date:          time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
		DayType:       calendar.DayTypeWorkingDay,
		PayMultiplier: 1.0,
	}
	env.holidays.dates["2026-03-07"] = true

	res, err := env.svc.Resolve(ctx, "comp-1", time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, calendar.DayTypeWorkingDay, res.DayType)
	assert.Equal(t, 1.0, res.PayMultiplier)

	// Legacy holiday list applies when no override row exists.
	env.holidays.dates["2026-03-09"] = true
	res, err = env.svc.Resolve(ctx, "comp-1", time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, calendar.DayTypeHoliday, res.DayType)

	// Weekend heuristic.
	res, err = env.svc.Resolve(ctx, "comp-1", time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, calendar.DayTypeWeekend, res.DayType)

	// Plain weekday.
	res, err = env.svc.Resolve(ctx, "comp-1", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, calendar.DayTypeWorkingDay, res.DayType)
	assert.Equal(t, 1.0, res.PayMultiplier)
}

func TestBulkUpsert(t *testing.T) {
	env := newCalendarTestEnv()
	ctx := authedCtx(t, "comp-1")

	desc := "Eid holidays"
	out, err := env.svc.BulkUpsert(ctx, calendar.BulkUpsertRequest{
		Dates:         []string{"2026-03-20", "2026-03-21"},
		DayType:       string(calendar.DayTypeHoliday),
		PayMultiplier: 2.0,
		Description:   &desc,
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "2026-03-20", out[0].Date)
	assert.Equal(t, string(calendar.DayTypeHoliday), out[0].DayType)

	res, err := env.svc.Resolve(context.Background(), "comp-1", time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, calendar.DayTypeHoliday, res.DayType)
	assert.Equal(t, 2.0, res.PayMultiplier)
}

func TestBulkUpsert_Validation(t *testing.T) {
	env := newCalendarTestEnv()
	ctx := authedCtx(t, "comp-1")

	_, err := env.svc.BulkUpsert(ctx, calendar.BulkUpsertRequest{
		Dates:   []string{"2026-03-20"},
		DayType: "VACATION",
	})
	assert.ErrorIs(t, err, calendar.ErrInvalidDayType)

	_, err = env.svc.BulkUpsert(ctx, calendar.BulkUpsertRequest{
		DayType: string(calendar.DayTypeHoliday),
	})
	assert.ErrorIs(t, err, calendar.ErrNoDates)

	_, err = env.svc.BulkUpsert(ctx, calendar.BulkUpsertRequest{
		Dates:   []string{"20-03-2026"},
		DayType: string(calendar.DayTypeHoliday),
	})
	assert.ErrorIs(t, err, calendar.ErrInvalidDate)
}

func TestEmployeeCalendar_Statuses(t *testing.T) {
	env := newCalendarTestEnv()
	ctx := authedCtx(t, "comp-1")

	// Monday 2026-03-02: attendance.
	env.events.events = []event.AttendanceEvent{
		{ID: "e1", CompanyID: "comp-1", EmployeeID: "emp-1", EventType: event.EventTypeClockIn,
			Timestamp: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)},
		{ID: "e2", CompanyID: "comp-1", EmployeeID: "emp-1", EventType: event.EventTypeClockOut,
			Timestamp: time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)},
	}
	// Tuesday 2026-03-03: approved leave.
	env.timeoff.requests = []timeoff.Request{{
		ID: "r1", CompanyID: "comp-1", EmployeeID: "emp-1",
		StartDate: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		Reason:    "family visit",
		Status:    timeoff.StatusApproved,
	}}

	days, err := env.svc.EmployeeCalendar(ctx, "emp-1", "2026-03-02", "2026-03-08")
	require.NoError(t, err)
	require.Len(t, days, 7)

	byDate := make(map[string]calendar.EmployeeCalendarDay, len(days))
	for _, d := range days {
		byDate[d.Date] = d
	}

	present := byDate["2026-03-02"]
	assert.Equal(t, "PRESENT", present.Status)
	require.NotNil(t, present.CheckInTime)
	assert.Equal(t, "09:00", *present.CheckInTime)
	require.NotNil(t, present.CheckOutTime)
	assert.Equal(t, "17:00", *present.CheckOutTime)

	leave := byDate["2026-03-03"]
	assert.Equal(t, "LEAVE", leave.Status)
	require.NotNil(t, leave.LeaveReason)
	assert.Equal(t, "family visit", *leave.LeaveReason)

	// Wednesday the 4th is "today" with no events: absent so far.
	assert.Equal(t, "ABSENT", byDate["2026-03-04"].Status)
	// Thursday onward has not happened yet.
	assert.Equal(t, "FUTURE", byDate["2026-03-05"].Status)
	// The weekend heuristic labels Saturday and Sunday, but only once
	// the day has passed without presence; future weekends stay FUTURE.
	assert.Equal(t, "FUTURE", byDate["2026-03-07"].Status)
}

func TestEmployeeCalendar_PastWeekendAndHoliday(t *testing.T) {
	env := newCalendarTestEnv()
	env.svc.(*CalendarServiceImpl).now = func() time.Time {
		return time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	}
	ctx := authedCtx(t, "comp-1")

	env.holidays.dates["2026-03-09"] = true

	days, err := env.svc.EmployeeCalendar(ctx, "emp-1", "2026-03-07", "2026-03-09")
	require.NoError(t, err)
	require.Len(t, days, 3)

	assert.Equal(t, "WEEKEND", days[0].Status) // Saturday
	assert.Equal(t, "WEEKEND", days[1].Status) // Sunday
	assert.Equal(t, "HOLIDAY", days[2].Status)
	assert.Equal(t, string(calendar.DayTypeHoliday), days[2].DayType)
}

func TestEmployeeCalendar_MissingClaims(t *testing.T) {
	env := newCalendarTestEnv()

	_, err := env.svc.EmployeeCalendar(context.Background(), "emp-1", "2026-03-02", "2026-03-08")
	assert.Error(t, err)
}
