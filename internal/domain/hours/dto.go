package hours

import "time"

// RecalculateRequest drives a range recomputation for one employee.
type RecalculateRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"` // YYYY-MM-DD
	EndDate    string `json:"end_date"`   // YYYY-MM-DD
}

func (r RecalculateRequest) Validate() error {
	if r.EmployeeID == "" {
		return ErrMissingEmployeeID
	}
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return ErrInvalidDate
	}
	end, err := time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		return ErrInvalidDate
	}
	if start.After(end) {
		return ErrInvalidDateRange
	}
	return nil
}

// RecordResponse is the API shape of a summary row. Durations are
// reported as decimal hours.
type RecordResponse struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	WorkDate           string  `json:"work_date"`
	TotalHoursWorked   float64 `json:"total_hours_worked"`
	WeekdayHours       float64 `json:"weekday_hours"`
	SaturdayHours      float64 `json:"saturday_hours"`
	SundayHours        float64 `json:"sunday_hours"`
	PublicHolidayHours float64 `json:"public_holiday_hours"`
	LeaveHours         float64 `json:"leave_hours"`
	CalculatedAt       string  `json:"calculated_at"`
}

// ToResponse converts a record into its API shape.
func (r CalculatedHoursRecord) ToResponse() RecordResponse {
	return RecordResponse{
		ID:                 r.ID,
		EmployeeID:         r.EmployeeID,
		WorkDate:           r.WorkDate.Format("2006-01-02"),
		TotalHoursWorked:   r.TotalHoursWorked.Hours(),
		WeekdayHours:       r.WeekdayHours.Hours(),
		SaturdayHours:      r.SaturdayHours.Hours(),
		SundayHours:        r.SundayHours.Hours(),
		PublicHolidayHours: r.PublicHolidayHours.Hours(),
		LeaveHours:         r.LeaveHours.Hours(),
		CalculatedAt:       r.CalculatedAt.Format(time.RFC3339),
	}
}

// ReconstructionResponse is the API shape of a day reconstruction.
type ReconstructionResponse struct {
	EmployeeID     string   `json:"employee_id"`
	Date           string   `json:"date"`
	WorkedDuration float64  `json:"worked_hours"`
	BreakDuration  float64  `json:"break_hours"`
	Anomalies      []string `json:"anomalies"`
}

// RangeReportResponse is the API shape of a range recalculation.
type RangeReportResponse struct {
	Records  []RecordResponse      `json:"records"`
	Failures []DayFailureResponse  `json:"failures"`
}

// DayFailureResponse reports one failed date of a range recalculation.
type DayFailureResponse struct {
	Date  string `json:"date"`
	Error string `json:"error"`
}
