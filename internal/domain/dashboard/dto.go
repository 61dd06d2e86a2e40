package dashboard

// TodayStatsResponse is the live headcount for a company "today".
// The four statuses always reconcile:
// clocked_in + clocked_out + on_leave + absent == total_employees.
type TodayStatsResponse struct {
	TotalEmployees  int64  `json:"total_employees"`
	ClockedIn       int64  `json:"clocked_in"`
	ClockedOut      int64  `json:"clocked_out"`
	OnLeave         int64  `json:"on_leave"`
	Absent          int64  `json:"absent"`
	PendingRequests int64  `json:"pending_requests"`
	Date            string `json:"date"` // YYYY-MM-DD
}
