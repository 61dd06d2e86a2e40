package hours

import "time"

// FullDayLeaveCredit is the fixed worked-hour equivalent granted for an
// approved absence with no attendance. Partial-day leave is not modeled.
const FullDayLeaveCredit = 8 * time.Hour

// CalculatedHoursRecord is one recomputable summary row per
// (employee, work date). The worked buckets are mutually exclusive:
// exactly one is non-zero on a day with attendance. LeaveHours is
// sourced from approved absences, not from events, and is excluded
// from TotalHoursWorked.
type CalculatedHoursRecord struct {
	ID         string
	CompanyID  string
	EmployeeID string
	WorkDate   time.Time // date only, midnight UTC

	TotalHoursWorked   time.Duration
	WeekdayHours       time.Duration
	SaturdayHours      time.Duration
	SundayHours        time.Duration
	PublicHolidayHours time.Duration
	LeaveHours         time.Duration

	CalculatedAt time.Time
}

// DayReconstruction is the outcome of replaying one employee's events
// for one local day. Anomalies are audit warnings, never errors: the
// reconstruction always yields a best-effort result.
type DayReconstruction struct {
	WorkedDuration time.Duration
	BreakDuration  time.Duration
	Anomalies      []string
}

// DayFailure records one date that could not be recomputed during a
// range recalculation.
type DayFailure struct {
	Date time.Time
	Err  error
}

// RangeResult is the outcome of a range recalculation: the rows that
// were upserted plus the dates that failed. One bad date never aborts
// the rest of the range.
type RangeResult struct {
	Records  []CalculatedHoursRecord
	Failures []DayFailure
}
