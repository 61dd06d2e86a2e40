package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/chronosecure/timeclock-backend-go/internal/domain/calendar"
	"github.com/chronosecure/timeclock-backend-go/internal/domain/event"
	"github.com/chronosecure/timeclock-backend-go/internal/domain/timeoff"
)

type CalendarServiceImpl struct {
	calendar.DayConfigRepository
	calendar.HolidayRepository
	event.EventRepository
	timeoff.RequestRepository
	loc *time.Location
	now func() time.Time
}

func NewCalendarService(
	dayConfigRepo calendar.DayConfigRepository,
	holidayRepo calendar.HolidayRepository,
	eventRepo event.EventRepository,
	timeoffRepo timeoff.RequestRepository,
	loc *time.Location,
) calendar.CalendarService {
	return &CalendarServiceImpl{
		DayConfigRepository: dayConfigRepo,
		HolidayRepository:   holidayRepo,
		EventRepository:     eventRepo,
		RequestRepository:   timeoffRepo,
		loc:                 loc,
		now:                 func() time.Time { return time.Now().UTC() },
	}
}

func companyIDFromClaims(ctx context.Context) (string, error) {
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

// Resolve implements calendar.CalendarService.
func (c *CalendarServiceImpl) Resolve(ctx context.Context, companyID string, date time.Time) (calendar.DayResolution, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	cfg, err := c.DayConfigRepository.GetByCompanyAndDate(ctx, companyID, day)
	if err != nil {
		return calendar.DayResolution{}, fmt.Errorf("failed to get calendar config: %w", err)
	}
	if cfg != nil {
		return calendar.DayResolution{
			DayType:       cfg.DayType,
			PayMultiplier: cfg.PayMultiplier,
			Description:   cfg.Description,
		}, nil
	}

	// Legacy holiday list, consulted only when no override row exists.
	isHoliday, err := c.HolidayRepository.Exists(ctx, companyID, day)
	if err != nil {
		return calendar.DayResolution{}, fmt.Errorf("failed to check legacy holidays: %w", err)
	}
	if isHoliday {
		return calendar.DayResolution{DayType: calendar.DayTypeHoliday, PayMultiplier: 2.0}, nil
	}

	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return calendar.DayResolution{DayType: calendar.DayTypeWeekend, PayMultiplier: 1.5}, nil
	}

	return calendar.DayResolution{DayType: calendar.DayTypeWorkingDay, PayMultiplier: 1.0}, nil
}

// BulkUpsert implements calendar.CalendarService.
func (c *CalendarServiceImpl) BulkUpsert(ctx context.Context, req calendar.BulkUpsertRequest) ([]calendar.DayConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]calendar.DayConfigResponse, 0, len(req.Dates))
	for _, d := range req.Dates {
		date, err := time.Parse("2006-01-02", d)
		if err != nil {
			return nil, calendar.ErrInvalidDate
		}

		saved, err := c.DayConfigRepository.Upsert(ctx, calendar.DayConfig{
			ID:            uuid.NewString(),
			CompanyID:     companyID,
			Date:          date,
			DayType:       calendar.DayType(req.DayType),
			PayMultiplier: req.PayMultiplier,
			Description:   req.Description,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to upsert calendar config for %s: %w", d, err)
		}

		out = append(out, toDayConfigResponse(saved))
	}

	return out, nil
}

// ListRange implements calendar.CalendarService.
func (c *CalendarServiceImpl) ListRange(ctx context.Context, startDate, endDate string) ([]calendar.DayConfigResponse, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return nil, err
	}

	start, end, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	configs, err := c.DayConfigRepository.ListByCompanyBetween(ctx, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar configs: %w", err)
	}

	out := make([]calendar.DayConfigResponse, 0, len(configs))
	for _, cfg := range configs {
		out = append(out, toDayConfigResponse(cfg))
	}
	return out, nil
}

// EmployeeCalendar implements calendar.CalendarService.
func (c *CalendarServiceImpl) EmployeeCalendar(ctx context.Context, employeeID, startDate, endDate string) ([]calendar.EmployeeCalendarDay, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return nil, err
	}

	start, end, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	leaves, err := c.RequestRepository.ListOverlapping(ctx, employeeID, []timeoff.Status{timeoff.StatusApproved}, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave: %w", err)
	}

	rangeFrom := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, c.loc).UTC()
	rangeTo := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, c.loc).AddDate(0, 0, 1).UTC()
	events, err := c.EventRepository.ListByEmployeeBetween(ctx, employeeID, rangeFrom, rangeTo, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	eventsByDay := make(map[string][]event.AttendanceEvent)
	for _, ev := range events {
		key := ev.Timestamp.In(c.loc).Format("2006-01-02")
		eventsByDay[key] = append(eventsByDay[key], ev)
	}

	today := c.now().In(c.loc)
	todayKey := today.Format("2006-01-02")

	var out []calendar.EmployeeCalendarDay
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		resolution, err := c.Resolve(ctx, companyID, d)
		if err != nil {
			return nil, err
		}

		key := d.Format("2006-01-02")
		day := calendar.EmployeeCalendarDay{
			Date:          key,
			DayType:       string(resolution.DayType),
			PayMultiplier: resolution.PayMultiplier,
			Description:   resolution.Description,
		}

		dayEvents := eventsByDay[key]
		leave := coveringLeave(leaves, d)

		switch {
		case len(dayEvents) > 0:
			day.Status = "PRESENT"
			day.CheckInTime, day.CheckOutTime = presenceTimes(dayEvents, c.loc)
		case leave != nil:
			day.Status = "LEAVE"
			reason := leave.Reason
			day.LeaveReason = &reason
		case key > todayKey:
			day.Status = "FUTURE"
		case resolution.DayType == calendar.DayTypeHoliday:
			day.Status = "HOLIDAY"
		case resolution.DayType == calendar.DayTypeWeekend:
			day.Status = "WEEKEND"
		default:
			day.Status = "ABSENT"
		}

		out = append(out, day)
	}

	return out, nil
}

func parseDateRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return time.Time{}, time.Time{}, calendar.ErrInvalidDate
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return time.Time{}, time.Time{}, calendar.ErrInvalidDate
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, calendar.ErrInvalidDate
	}
	return start, end, nil
}

func coveringLeave(leaves []timeoff.Request, date time.Time) *timeoff.Request {
	for i := range leaves {
		if leaves[i].Covers(date) {
			return &leaves[i]
		}
	}
	return nil
}

// presenceTimes returns the first clock-in and last clock-out of the
// day as local HH:MM strings. A day with events but no clock-out shows
// a check-in only.
func presenceTimes(events []event.AttendanceEvent, loc *time.Location) (*string, *string) {
	var checkIn, checkOut *string
	for _, ev := range events {
		local := ev.Timestamp.In(loc).Format("15:04")
		switch ev.EventType {
		case event.EventTypeClockIn:
			if checkIn == nil {
				v := local
				checkIn = &v
			}
		case event.EventTypeClockOut:
			v := local
			checkOut = &v
		}
	}
	return checkIn, checkOut
}

func toDayConfigResponse(cfg calendar.DayConfig) calendar.DayConfigResponse {
	return calendar.DayConfigResponse{
		ID:            cfg.ID,
		Date:          cfg.Date.Format("2006-01-02"),
		DayType:       string(cfg.DayType),
		PayMultiplier: cfg.PayMultiplier,
		Description:   cfg.Description,
	}
}
