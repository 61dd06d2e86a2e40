package hours

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chronosecure/timeclock-backend-go/internal/domain/calendar"
	"github.com/chronosecure/timeclock-backend-go/internal/domain/event"
	"github.com/chronosecure/timeclock-backend-go/internal/domain/hours"
	"github.com/chronosecure/timeclock-backend-go/internal/domain/timeoff"
	"github.com/chronosecure/timeclock-backend-go/internal/pkg/keyedmutex"
)

type HoursServiceImpl struct {
	hours.HoursRepository
	event.EventRepository
	timeoff.RequestRepository
	calendarService calendar.CalendarService
	locks           *keyedmutex.KeyedMutex
	loc             *time.Location
}

func NewHoursService(
	hoursRepo hours.HoursRepository,
	eventRepo event.EventRepository,
	timeoffRepo timeoff.RequestRepository,
	calendarService calendar.CalendarService,
	loc *time.Location,
) hours.HoursService {
	return &HoursServiceImpl{
		HoursRepository:   hoursRepo,
		EventRepository:   eventRepo,
		RequestRepository: timeoffRepo,
		calendarService:   calendarService,
		locks:             keyedmutex.New(),
		loc:               loc,
	}
}

// dayBounds returns the UTC instants of local midnight and the next
// local midnight for date in the company timezone.
func (h *HoursServiceImpl) dayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, h.loc)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}

// ReconstructDay implements hours.HoursService.
func (h *HoursServiceImpl) ReconstructDay(ctx context.Context, companyID, employeeID string, date time.Time) (hours.DayReconstruction, error) {
	from, to := h.dayBounds(date)

	events, err := h.EventRepository.ListByEmployeeBetween(ctx, employeeID, from, to, companyID)
	if err != nil {
		return hours.DayReconstruction{}, fmt.Errorf("failed to list events for reconstruction: %w", err)
	}

	return ReconstructSession(events), nil
}

// CalculateHoursForDate implements hours.HoursService.
func (h *HoursServiceImpl) CalculateHoursForDate(ctx context.Context, companyID, employeeID string, date time.Time) (hours.CalculatedHoursRecord, error) {
	workDate := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	unlock := h.locks.Lock(employeeID + "|" + workDate.Format("2006-01-02"))
	defer unlock()

	rec, err := h.ReconstructDay(ctx, companyID, employeeID, date)
	if err != nil {
		return hours.CalculatedHoursRecord{}, err
	}

	resolution, err := h.calendarService.Resolve(ctx, companyID, workDate)
	if err != nil {
		return hours.CalculatedHoursRecord{}, fmt.Errorf("failed to resolve calendar day: %w", err)
	}

	onLeave, err := h.RequestRepository.HasApprovedLeaveOn(ctx, employeeID, workDate)
	if err != nil {
		return hours.CalculatedHoursRecord{}, fmt.Errorf("failed to check approved leave: %w", err)
	}

	record := CategorizeDay(workDate, rec, resolution, onLeave)
	record.ID = uuid.NewString()
	record.CompanyID = companyID
	record.EmployeeID = employeeID
	record.CalculatedAt = time.Now().UTC()

	saved, err := h.HoursRepository.Upsert(ctx, record)
	if err != nil {
		return hours.CalculatedHoursRecord{}, fmt.Errorf("failed to upsert calculated hours: %w", err)
	}

	return saved, nil
}

// RecalculateRange implements hours.HoursService.
func (h *HoursServiceImpl) RecalculateRange(ctx context.Context, companyID, employeeID string, start, end time.Time) (hours.RangeResult, error) {
	if start.After(end) {
		return hours.RangeResult{}, hours.ErrInvalidDateRange
	}

	var result hours.RangeResult

	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		record, err := h.CalculateHoursForDate(ctx, companyID, employeeID, d)
		if err != nil {
			result.Failures = append(result.Failures, hours.DayFailure{Date: d, Err: err})
			continue
		}
		result.Records = append(result.Records, record)
	}

	return result, nil
}

// ListRecords implements hours.HoursService.
func (h *HoursServiceImpl) ListRecords(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]hours.CalculatedHoursRecord, error) {
	if start.After(end) {
		return nil, hours.ErrInvalidDateRange
	}
	records, err := h.HoursRepository.ListByEmployeeBetween(ctx, employeeID, start, end, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculated hours: %w", err)
	}
	return records, nil
}
