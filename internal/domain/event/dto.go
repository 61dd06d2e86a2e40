package event

import (
	"time"
)

// RecordEventRequest is the single ingress call for clock events. The
// caller (kiosk API, third-party sync feed) supplies identity already
// resolved and validated against its own tenant.
type RecordEventRequest struct {
	EmployeeID      string   `json:"employee_id"`
	EventType       string   `json:"event_type"`
	Timestamp       *string  `json:"timestamp,omitempty"` // RFC 3339; defaults to server time
	DeviceID        *string  `json:"device_id,omitempty"`
	ConfidenceScore *float64 `json:"confidence_score,omitempty"`
	IsOfflineSync   bool     `json:"is_offline_sync"`
}

// plausibleSkew bounds how far an event timestamp may sit from server
// time before ingestion rejects it. Offline kiosks sync late, so the
// past window is generous; the future window only absorbs clock drift.
const (
	plausiblePast   = 31 * 24 * time.Hour
	plausibleFuture = 15 * time.Minute
)

// Validate rejects malformed events before they reach the engine.
func (r RecordEventRequest) Validate() error {
	if r.EmployeeID == "" {
		return ErrMissingEmployeeID
	}
	if !EventType(r.EventType).Valid() {
		return ErrUnknownEventType
	}
	if r.Timestamp != nil {
		ts, err := time.Parse(time.RFC3339, *r.Timestamp)
		if err != nil {
			return ErrTimestampOutOfBounds
		}
		now := time.Now()
		if ts.Before(now.Add(-plausiblePast)) || ts.After(now.Add(plausibleFuture)) {
			return ErrTimestampOutOfBounds
		}
	}
	if r.ConfidenceScore != nil && (*r.ConfidenceScore < 0 || *r.ConfidenceScore > 1) {
		return ErrInvalidConfidence
	}
	return nil
}

// EventTime resolves the effective event instant in UTC.
func (r RecordEventRequest) EventTime() time.Time {
	if r.Timestamp != nil {
		if ts, err := time.Parse(time.RFC3339, *r.Timestamp); err == nil {
			return ts.UTC()
		}
	}
	return time.Now().UTC()
}

// EventResponse is the API shape of a stored event.
type EventResponse struct {
	ID              string   `json:"id"`
	EmployeeID      string   `json:"employee_id"`
	EmployeeName    *string  `json:"employee_name,omitempty"`
	EventType       string   `json:"event_type"`
	Timestamp       string   `json:"timestamp"`
	DeviceID        *string  `json:"device_id,omitempty"`
	ConfidenceScore *float64 `json:"confidence_score,omitempty"`
	IsOfflineSync   bool     `json:"is_offline_sync"`
}

// EventFilter narrows the admin event listing.
type EventFilter struct {
	EmployeeID *string
	StartDate  *string
	EndDate    *string
	Page       int
	Limit      int
	SortOrder  string
}

// ListEventsResponse is a paginated event listing.
type ListEventsResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Events     []EventResponse `json:"events"`
}

// NextEventResponse carries the finite-state suggestion for a badge.
type NextEventResponse struct {
	NextExpectedEvent string `json:"next_expected_event"`
}
