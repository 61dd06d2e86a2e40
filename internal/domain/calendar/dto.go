package calendar

import "time"

// BulkUpsertRequest marks a set of dates with one classification, the
// way administrators load holiday schedules: many dates, one type.
type BulkUpsertRequest struct {
	Dates         []string `json:"dates"` // YYYY-MM-DD
	DayType       string   `json:"day_type"`
	PayMultiplier float64  `json:"pay_multiplier"`
	Description   *string  `json:"description,omitempty"`
}

func (r BulkUpsertRequest) Validate() error {
	if len(r.Dates) == 0 {
		return ErrNoDates
	}
	if !DayType(r.DayType).Valid() {
		return ErrInvalidDayType
	}
	if r.PayMultiplier < 0 {
		return ErrInvalidPayMultiplier
	}
	for _, d := range r.Dates {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return ErrInvalidDate
		}
	}
	return nil
}

// DayConfigResponse is the API shape of a calendar override row.
type DayConfigResponse struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	DayType       string  `json:"day_type"`
	PayMultiplier float64 `json:"pay_multiplier"`
	Description   *string `json:"description,omitempty"`
}

// EmployeeCalendarDay combines classification, leave and attendance for
// one date of the per-employee calendar view.
type EmployeeCalendarDay struct {
	Date          string  `json:"date"`
	DayType       string  `json:"day_type"`
	Status        string  `json:"status"` // PRESENT, ABSENT, LEAVE, HOLIDAY, WEEKEND, FUTURE
	CheckInTime   *string `json:"check_in_time,omitempty"`
	CheckOutTime  *string `json:"check_out_time,omitempty"`
	LeaveReason   *string `json:"leave_reason,omitempty"`
	PayMultiplier float64 `json:"pay_multiplier"`
	Description   *string `json:"description,omitempty"`
}
