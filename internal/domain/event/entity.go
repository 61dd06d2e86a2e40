package event

import (
	"time"
)

// EventType is the kind of clock action a badge or kiosk reported.
type EventType string

const (
	EventTypeClockIn    EventType = "CLOCK_IN"
	EventTypeBreakStart EventType = "BREAK_START"
	EventTypeBreakEnd   EventType = "BREAK_END"
	EventTypeClockOut   EventType = "CLOCK_OUT"
)

// Valid reports whether t is one of the four known clock actions.
func (t EventType) Valid() bool {
	switch t {
	case EventTypeClockIn, EventTypeBreakStart, EventTypeBreakEnd, EventTypeClockOut:
		return true
	}
	return false
}

// AttendanceEvent is an immutable clock fact. Rows are created once at
// ingestion and never updated; corrections happen downstream in the
// calculated summaries, not by rewriting history.
type AttendanceEvent struct {
	ID         string
	CompanyID  string // denormalized for tenant-scoped queries
	EmployeeID string
	EventType  EventType
	Timestamp  time.Time // stored UTC; bucketed into local days at read time

	DeviceID        *string
	ConfidenceScore *float64 // 0.0-1.0 liveness/match confidence from capture
	IsOfflineSync   bool

	CreatedAt time.Time

	// DTO
	EmployeeName *string
}
