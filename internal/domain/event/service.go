package event

import (
	"context"
)

// EventService defines the ingestion boundary and the event-driven reads.
type EventService interface {
	// RecordEvent validates and persists a clock event, then runs the
	// synchronous reactions: time-off conflict sweep, same-day recompute
	// and dashboard broadcast. Reactions never fail the ingestion.
	RecordEvent(ctx context.Context, req RecordEventRequest) (EventResponse, error)

	// GetNextExpectedEvent suggests the next clock action for an employee
	// from the latest event inside a 24h lookback. Never errors on empty
	// history; no events means CLOCK_IN.
	GetNextExpectedEvent(ctx context.Context, employeeID string) (EventType, error)

	// ListEvents returns the company's raw event log (admin view)
	ListEvents(ctx context.Context, filter EventFilter) (ListEventsResponse, error)
}
