package hours

import (
	"time"

	"github.com/chronosecure/timeclock-backend-go/internal/domain/calendar"
	"github.com/chronosecure/timeclock-backend-go/internal/domain/hours"
)

// CategorizeDay files a day's reconstructed worked time into exactly one
// bucket, chosen by the resolved day type. Leave credit applies only when
// there is no presence at all: any worked time on a day with approved
// leave wins over the fixed credit, and stale leave credit is overwritten
// on the next recompute.
func CategorizeDay(
	date time.Time,
	rec hours.DayReconstruction,
	resolution calendar.DayResolution,
	onApprovedLeave bool,
) hours.CalculatedHoursRecord {
	record := hours.CalculatedHoursRecord{WorkDate: date}

	if rec.WorkedDuration == 0 {
		if onApprovedLeave {
			record.LeaveHours = hours.FullDayLeaveCredit
		}
		return record
	}

	record.TotalHoursWorked = rec.WorkedDuration

	switch resolution.DayType {
	case calendar.DayTypeHoliday:
		record.PublicHolidayHours = rec.WorkedDuration
	case calendar.DayTypeWeekend:
		// Filed by the actual weekday so Saturday and Sunday rates stay
		// distinguishable downstream.
		if date.Weekday() == time.Sunday {
			record.SundayHours = rec.WorkedDuration
		} else {
			record.SaturdayHours = rec.WorkedDuration
		}
	default:
		// WORKING_DAY, including admin overrides of an actual weekend.
		record.WeekdayHours = rec.WorkedDuration
	}

	return record
}
