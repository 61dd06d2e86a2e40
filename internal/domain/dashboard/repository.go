package dashboard

import (
	"context"
	"time"

	"github.com/chronosecure/timeclock-backend-go/internal/domain/event"
)

// DashboardRepository defines the aggregation reads behind the live
// dashboard. Leave and pending-request counts come from the time-off
// repository; only the reads without a home domain live here.
type DashboardRepository interface {
	// CountActiveEmployees returns the company's active headcount
	CountActiveEmployees(ctx context.Context, companyID string) (int64, error)

	// LatestEventPerEmployee returns, for every employee with at least
	// one event in [from, to), only that employee's most recent event
	LatestEventPerEmployee(ctx context.Context, companyID string, from, to time.Time) ([]event.AttendanceEvent, error)
}
