package hours

import (
	"context"
	"time"
)

// HoursService is the reconstruction and calculation engine. Methods
// take explicit company/employee identifiers so the batch sweep can
// call them outside a request context.
type HoursService interface {
	// ReconstructDay replays one employee's events for one local day and
	// returns worked/break totals plus audit anomalies. Read-only.
	ReconstructDay(ctx context.Context, companyID, employeeID string, date time.Time) (DayReconstruction, error)

	// CalculateHoursForDate reconstructs, classifies and upserts the
	// summary row for one day. Idempotent: with no intervening events the
	// same row comes back.
	CalculateHoursForDate(ctx context.Context, companyID, employeeID string, date time.Time) (CalculatedHoursRecord, error)

	// RecalculateRange runs CalculateHoursForDate over each date of
	// [start, end]. Per-date failures are collected in the result, not
	// raised; only context cancellation aborts the walk.
	RecalculateRange(ctx context.Context, companyID, employeeID string, start, end time.Time) (RangeResult, error)

	// ListRecords returns stored summary rows for a date range
	ListRecords(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]CalculatedHoursRecord, error)
}
