package calendar

import "time"

// DayType classifies a company date for pay purposes.
type DayType string

const (
	DayTypeWorkingDay DayType = "WORKING_DAY"
	DayTypeWeekend    DayType = "WEEKEND"
	DayTypeHoliday    DayType = "HOLIDAY"
)

// Valid reports whether t is a known day classification.
func (t DayType) Valid() bool {
	switch t {
	case DayTypeWorkingDay, DayTypeWeekend, DayTypeHoliday:
		return true
	}
	return false
}

// DayConfig is an explicit per-(company, date) override. At most one
// row exists per pair; absence means "apply the weekend heuristic".
type DayConfig struct {
	ID            string
	CompanyID     string
	Date          time.Time // date only, midnight UTC
	DayType       DayType
	PayMultiplier float64
	Description   *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PublicHoliday is the legacy date-only holiday list. It carries no
// multiplier and is consulted only when no DayConfig row exists, for
// data predating the calendar table.
type PublicHoliday struct {
	ID        string
	CompanyID string
	Name      string
	Date      time.Time
}

// DayResolution is the outcome of classifying one company date.
type DayResolution struct {
	DayType       DayType
	PayMultiplier float64
	Description   *string
}
