package timeoff

import "time"

// CreateRequest submits a new time-off request.
type CreateRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"` // YYYY-MM-DD
	EndDate    string `json:"end_date"`   // YYYY-MM-DD
	Reason     string `json:"reason"`
}

func (r CreateRequest) Validate() error {
	if r.EmployeeID == "" {
		return ErrMissingEmployeeID
	}
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return ErrInvalidDate
	}
	end, err := time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		return ErrInvalidDate
	}
	if start.After(end) {
		return ErrInvalidDateRange
	}
	return nil
}

// RequestResponse is the API shape of a time-off request.
type RequestResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
}

// RequestFilter narrows the company listing.
type RequestFilter struct {
	EmployeeID *string
	Status     *string
	Page       int
	Limit      int
}

// ListRequestsResponse is a paginated request listing.
type ListRequestsResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Requests   []RequestResponse `json:"requests"`
}
