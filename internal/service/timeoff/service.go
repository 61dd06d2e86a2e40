package timeoff

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/chronosecure/timeclock-backend-go/internal/domain/timeoff"
)

type RequestServiceImpl struct {
	timeoff.RequestRepository
}

func NewRequestService(repo timeoff.RequestRepository) timeoff.RequestService {
	return &RequestServiceImpl{RequestRepository: repo}
}

func companyIDFromClaims(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

// CreateRequest implements timeoff.RequestService.
func (s *RequestServiceImpl) CreateRequest(ctx context.Context, req timeoff.CreateRequest) (timeoff.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return timeoff.RequestResponse{}, err
	}

	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return timeoff.RequestResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	created, err := s.RequestRepository.Create(ctx, timeoff.Request{
		ID:         uuid.NewString(),
		CompanyID:  companyID,
		EmployeeID: req.EmployeeID,
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
		Status:     timeoff.StatusPending,
	})
	if err != nil {
		return timeoff.RequestResponse{}, fmt.Errorf("failed to create time-off request: %w", err)
	}

	return toResponse(created), nil
}

// ListRequests implements timeoff.RequestService.
func (s *RequestServiceImpl) ListRequests(ctx context.Context, filter timeoff.RequestFilter) (timeoff.ListRequestsResponse, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return timeoff.ListRequestsResponse{}, err
	}

	if filter.Status != nil {
		status := timeoff.Status(strings.ToUpper(*filter.Status))
		switch status {
		case timeoff.StatusPending, timeoff.StatusApproved, timeoff.StatusRejected:
		default:
			return timeoff.ListRequestsResponse{}, timeoff.ErrInvalidStatus
		}
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	requests, total, err := s.RequestRepository.List(ctx, filter, companyID)
	if err != nil {
		return timeoff.ListRequestsResponse{}, fmt.Errorf("failed to list time-off requests: %w", err)
	}

	out := timeoff.ListRequestsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Requests:   make([]timeoff.RequestResponse, 0, len(requests)),
	}
	for _, req := range requests {
		out.Requests = append(out.Requests, toResponse(req))
	}
	return out, nil
}

// ApproveRequest implements timeoff.RequestService.
func (s *RequestServiceImpl) ApproveRequest(ctx context.Context, id string) (timeoff.RequestResponse, error) {
	return s.decide(ctx, id, timeoff.StatusApproved)
}

// RejectRequest implements timeoff.RequestService.
func (s *RequestServiceImpl) RejectRequest(ctx context.Context, id string) (timeoff.RequestResponse, error) {
	return s.decide(ctx, id, timeoff.StatusRejected)
}

// decide transitions a PENDING request. Re-deciding a processed
// request fails rather than silently flipping it.
func (s *RequestServiceImpl) decide(ctx context.Context, id string, status timeoff.Status) (timeoff.RequestResponse, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return timeoff.RequestResponse{}, err
	}

	req, err := s.RequestRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return timeoff.RequestResponse{}, err
	}
	if req.Status != timeoff.StatusPending {
		return timeoff.RequestResponse{}, timeoff.ErrRequestAlreadyProcessed
	}

	req.Status = status
	if err := s.RequestRepository.Update(ctx, req); err != nil {
		return timeoff.RequestResponse{}, fmt.Errorf("failed to update time-off request: %w", err)
	}

	return toResponse(req), nil
}

// RejectConflicting implements timeoff.RequestService. Takes explicit
// arguments because the ingestion path calls it outside any request
// claims.
func (s *RequestServiceImpl) RejectConflicting(ctx context.Context, employeeID string, today time.Time) (int, error) {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	from := day.AddDate(0, 0, -1)

	conflicting, err := s.RequestRepository.ListOverlapping(ctx, employeeID,
		[]timeoff.Status{timeoff.StatusPending, timeoff.StatusApproved}, from, day)
	if err != nil {
		return 0, fmt.Errorf("failed to list conflicting time-off requests: %w", err)
	}
	if len(conflicting) == 0 {
		return 0, nil
	}

	// The sweep rejects all conflicting requests or none: a partial
	// sweep would leave the employee's leave state half-updated.
	rejected := 0
	err = s.RequestRepository.InTransaction(ctx, func(ctx context.Context) error {
		for _, req := range conflicting {
			req.Status = timeoff.StatusRejected
			if !strings.HasSuffix(req.Reason, timeoff.AutoRejectMarker) {
				req.Reason += timeoff.AutoRejectMarker
			}
			if err := s.RequestRepository.Update(ctx, req); err != nil {
				return fmt.Errorf("failed to auto-reject time-off request %s: %w", req.ID, err)
			}
			rejected++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return rejected, nil
}

func toResponse(req timeoff.Request) timeoff.RequestResponse {
	return timeoff.RequestResponse{
		ID:           req.ID,
		EmployeeID:   req.EmployeeID,
		EmployeeName: req.EmployeeName,
		StartDate:    req.StartDate.Format("2006-01-02"),
		EndDate:      req.EndDate.Format("2006-01-02"),
		Reason:       req.Reason,
		Status:       string(req.Status),
		CreatedAt:    req.CreatedAt.Format(time.RFC3339),
	}
}
