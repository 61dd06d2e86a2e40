package hours

import (
	"fmt"
	"time"

	"github.com/chronosecure/timeclock-backend-go/internal/domain/event"
	"github.com/chronosecure/timeclock-backend-go/internal/domain/hours"
)

// sessionState carries the two open-interval markers the replay loop
// transitions through. A nil openWorkStart means not clocked in; a nil
// openBreakStart means not on break.
type sessionState struct {
	openWorkStart  *time.Time
	openBreakStart *time.Time
}

// ReconstructSession replays one employee's events for one local day,
// sorted ascending by timestamp (insertion order breaking ties), and
// returns worked/break totals plus anomalies. Anomalies are warnings
// for audit; the result is always best-effort, never an error.
//
// Invariants the transitions maintain:
//   - BREAK_START closes the open work interval, so a CLOCK_OUT that
//     arrives without a matching BREAK_END cannot double-count the
//     pre-break time.
//   - An interval left open at end of day earns nothing: unterminated
//     sessions accrue no hours until a closing event lands.
func ReconstructSession(events []event.AttendanceEvent) hours.DayReconstruction {
	var rec hours.DayReconstruction
	var st sessionState

	for _, ev := range events {
		ts := ev.Timestamp

		switch ev.EventType {
		case event.EventTypeClockIn:
			if st.openWorkStart != nil {
				rec.Anomalies = append(rec.Anomalies,
					fmt.Sprintf("duplicate clock-in at %s", ts.Format(time.RFC3339)))
				// Keep the newest start; the earlier open interval is
				// dropped rather than double-counted.
			}
			st.openWorkStart = &ts

		case event.EventTypeBreakStart:
			if st.openWorkStart != nil {
				rec.WorkedDuration += ts.Sub(*st.openWorkStart)
				st.openWorkStart = nil
			} else {
				rec.Anomalies = append(rec.Anomalies,
					fmt.Sprintf("break without active clock-in at %s", ts.Format(time.RFC3339)))
			}
			st.openBreakStart = &ts

		case event.EventTypeBreakEnd:
			if st.openBreakStart != nil {
				rec.BreakDuration += ts.Sub(*st.openBreakStart)
				st.openBreakStart = nil
				st.openWorkStart = &ts // resume work
			} else {
				rec.Anomalies = append(rec.Anomalies,
					fmt.Sprintf("break-end without break-start at %s", ts.Format(time.RFC3339)))
			}

		case event.EventTypeClockOut:
			if st.openWorkStart != nil {
				rec.WorkedDuration += ts.Sub(*st.openWorkStart)
				st.openWorkStart = nil
			}
			if st.openBreakStart != nil {
				rec.Anomalies = append(rec.Anomalies,
					fmt.Sprintf("clocked out during open break at %s", ts.Format(time.RFC3339)))
				// The dangling break is discarded, not charged as work.
				st.openBreakStart = nil
			}
		}
	}

	if st.openWorkStart != nil {
		rec.Anomalies = append(rec.Anomalies,
			fmt.Sprintf("missing clock-out for session started at %s",
				st.openWorkStart.Format(time.RFC3339)))
		// The open interval is not counted.
	}

	return rec
}
