package timeoff

import (
	"context"
	"time"
)

// RequestService defines the approval workflow plus the conflict sweep
// the ingestion path triggers on clock-in.
type RequestService interface {
	CreateRequest(ctx context.Context, req CreateRequest) (RequestResponse, error)

	ListRequests(ctx context.Context, filter RequestFilter) (ListRequestsResponse, error)

	// ApproveRequest transitions PENDING → APPROVED
	ApproveRequest(ctx context.Context, id string) (RequestResponse, error)

	// RejectRequest transitions PENDING → REJECTED
	RejectRequest(ctx context.Context, id string) (RequestResponse, error)

	// RejectConflicting auto-rejects PENDING and APPROVED requests of the
	// employee overlapping [today-1, today]; the one-day slack absorbs
	// timezone skew between the badge clock and the server clock. Returns
	// the number of requests rejected.
	RejectConflicting(ctx context.Context, employeeID string, today time.Time) (int, error)
}
