package hours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/chronosecure/timeclock-backend-go/internal/domain/calendar"
	"github.com/chronosecure/timeclock-backend-go/internal/domain/hours"
)

func day(t *testing.T, date string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("bad test date %q: %v", date, err)
	}
	return d
}

func TestCategorizeDay_BucketsAreExclusive(t *testing.T) {
	worked := hours.DayReconstruction{WorkedDuration: 7 * time.Hour}

	tests := []struct {
		name       string
		date       string // 2026-03-02 is a Monday
		resolution calendar.DayResolution
		check      func(t *testing.T, rec hours.CalculatedHoursRecord)
	}{
		{
			name:       "working day files under weekday",
			date:       "2026-03-02",
			resolution: calendar.DayResolution{DayType: calendar.DayTypeWorkingDay, PayMultiplier: 1.0},
			check: func(t *testing.T, rec hours.CalculatedHoursRecord) {
				assert.Equal(t, 7*time.Hour, rec.WeekdayHours)
			},
		},
		{
			name:       "saturday weekend files under saturday",
			date:       "2026-03-07",
			resolution: calendar.DayResolution{DayType: calendar.DayTypeWeekend, PayMultiplier: 1.5},
			check: func(t *testing.T, rec hours.CalculatedHoursRecord) {
				assert.Equal(t, 7*time.Hour, rec.SaturdayHours)
			},
		},
		{
			name:       "sunday weekend files under sunday",
			date:       "2026-03-08",
			resolution: calendar.DayResolution{DayType: calendar.DayTypeWeekend, PayMultiplier: 2.0},
			check: func(t *testing.T, rec hours.CalculatedHoursRecord) {
				assert.Equal(t, 7*time.Hour, rec.SundayHours)
			},
		},
		{
			name:       "holiday files under public holiday",
			date:       "2026-03-02",
			resolution: calendar.DayResolution{DayType: calendar.DayTypeHoliday, PayMultiplier: 2.0},
			check: func(t *testing.T, rec hours.CalculatedHoursRecord) {
				assert.Equal(t, 7*time.Hour, rec.PublicHolidayHours)
			},
		},
		{
			name:       "working-day override on an actual saturday files under weekday",
			date:       "2026-03-07",
			resolution: calendar.DayResolution{DayType: calendar.DayTypeWorkingDay, PayMultiplier: 1.0},
			check: func(t *testing.T, rec hours.CalculatedHoursRecord) {
				assert.Equal(t, 7*time.Hour, rec.WeekdayHours)
				assert.Zero(t, rec.SaturdayHours)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := CategorizeDay(day(t, tt.date), worked, tt.resolution, false)

			assert.Equal(t, 7*time.Hour, rec.TotalHoursWorked)
			assert.Equal(t, 7*time.Hour,
				rec.WeekdayHours+rec.SaturdayHours+rec.SundayHours+rec.PublicHolidayHours,
				"exactly one bucket carries the worked time")
			assert.Zero(t, rec.LeaveHours)
			tt.check(t, rec)
		})
	}
}

func TestCategorizeDay_LeaveCreditOnlyWithoutPresence(t *testing.T) {
	date := day(t, "2026-03-02")
	resolution := calendar.DayResolution{DayType: calendar.DayTypeWorkingDay, PayMultiplier: 1.0}

	t.Run("approved leave and no attendance earns the fixed credit", func(t *testing.T) {
		rec := CategorizeDay(date, hours.DayReconstruction{}, resolution, true)

		assert.Equal(t, hours.FullDayLeaveCredit, rec.LeaveHours)
		assert.Zero(t, rec.TotalHoursWorked, "leave credit is not worked time")
	})

	t.Run("presence wins over approved leave", func(t *testing.T) {
		rec := CategorizeDay(date, hours.DayReconstruction{WorkedDuration: 3 * time.Hour}, resolution, true)

		assert.Zero(t, rec.LeaveHours)
		assert.Equal(t, 3*time.Hour, rec.WeekdayHours)
	})

	t.Run("no leave and no attendance yields an all-zero row", func(t *testing.T) {
		rec := CategorizeDay(date, hours.DayReconstruction{}, resolution, false)

		assert.Zero(t, rec.TotalHoursWorked)
		assert.Zero(t, rec.LeaveHours)
	})
}
