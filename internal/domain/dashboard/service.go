package dashboard

import "context"

// DashboardService reduces today's event stream into live statistics.
type DashboardService interface {
	// GetTodayStats aggregates for the authenticated company (from JWT)
	GetTodayStats(ctx context.Context) (*TodayStatsResponse, error)

	// GetTodayStatsForCompany aggregates for an explicit company, used by
	// the ingestion path to broadcast refreshed stats
	GetTodayStatsForCompany(ctx context.Context, companyID string) (*TodayStatsResponse, error)
}
