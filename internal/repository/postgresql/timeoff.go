package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/chronosecure/timeclock-backend-go/internal/domain/timeoff"
	"github.com/chronosecure/timeclock-backend-go/internal/pkg/database"
)

type timeoffRepository struct {
	db *database.DB
}

func NewTimeoffRepository(db *database.DB) timeoff.RequestRepository {
	return &timeoffRepository{db: db}
}

// Create implements timeoff.RequestRepository.
func (r *timeoffRepository) Create(ctx context.Context, req timeoff.Request) (timeoff.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_off_requests (
			id, company_id, employee_id, start_date, end_date, reason, status,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.ID, req.CompanyID, req.EmployeeID, req.StartDate, req.EndDate,
		req.Reason, req.Status,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return timeoff.Request{}, fmt.Errorf("failed to create time-off request: %w", err)
	}

	return req, nil
}

// GetByID implements timeoff.RequestRepository.
func (r *timeoffRepository) GetByID(ctx context.Context, id string, companyID string) (timeoff.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, start_date, end_date, reason, status,
			   created_at, updated_at
		FROM time_off_requests
		WHERE id = $1
		  AND company_id = $2
	`

	var req timeoff.Request
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&req.ID, &req.CompanyID, &req.EmployeeID, &req.StartDate, &req.EndDate,
		&req.Reason, &req.Status, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return timeoff.Request{}, timeoff.ErrRequestNotFound
		}
		return timeoff.Request{}, fmt.Errorf("failed to get time-off request: %w", err)
	}

	return req, nil
}

// List implements timeoff.RequestRepository.
func (r *timeoffRepository) List(ctx context.Context, filter timeoff.RequestFilter, companyID string) ([]timeoff.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE tor.company_id = $1"
	args := []interface{}{companyID}
	argIndex := 2

	if filter.EmployeeID != nil {
		whereClause += fmt.Sprintf(" AND tor.employee_id = $%d", argIndex)
		args = append(args, *filter.EmployeeID)
		argIndex++
	}

	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND tor.status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM time_off_requests tor %s`, whereClause)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count time-off requests: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT tor.id, tor.company_id, tor.employee_id, tor.start_date, tor.end_date,
			   tor.reason, tor.status, tor.created_at, tor.updated_at,
			   e.full_name AS employee_name
		FROM time_off_requests tor
		JOIN employees e ON tor.employee_id = e.id
		%s
		ORDER BY tor.created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list time-off requests: %w", err)
	}
	defer rows.Close()

	var requests []timeoff.Request
	for rows.Next() {
		var req timeoff.Request
		var employeeName string
		if err := rows.Scan(
			&req.ID, &req.CompanyID, &req.EmployeeID, &req.StartDate, &req.EndDate,
			&req.Reason, &req.Status, &req.CreatedAt, &req.UpdatedAt,
			&employeeName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan time-off request: %w", err)
		}
		req.EmployeeName = &employeeName
		requests = append(requests, req)
	}

	return requests, total, rows.Err()
}

// ListOverlapping implements timeoff.RequestRepository.
func (r *timeoffRepository) ListOverlapping(ctx context.Context, employeeID string, statuses []timeoff.Status, from, to time.Time) ([]timeoff.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, start_date, end_date, reason, status,
			   created_at, updated_at
		FROM time_off_requests
		WHERE employee_id = $1
		  AND status = ANY($2)
		  AND start_date <= $3
		  AND end_date >= $4
		ORDER BY start_date ASC
	`

	statusStrs := make([]string, 0, len(statuses))
	for _, s := range statuses {
		statusStrs = append(statusStrs, string(s))
	}

	rows, err := q.Query(ctx, query, employeeID, statusStrs, to, from)
	if err != nil {
		return nil, fmt.Errorf("failed to list overlapping time-off requests: %w", err)
	}
	defer rows.Close()

	var requests []timeoff.Request
	for rows.Next() {
		var req timeoff.Request
		if err := rows.Scan(
			&req.ID, &req.CompanyID, &req.EmployeeID, &req.StartDate, &req.EndDate,
			&req.Reason, &req.Status, &req.CreatedAt, &req.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan time-off request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

// Update implements timeoff.RequestRepository.
func (r *timeoffRepository) Update(ctx context.Context, req timeoff.Request) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE time_off_requests
		SET status = $1, reason = $2, updated_at = NOW()
		WHERE id = $3
	`, req.Status, req.Reason, req.ID)
	if err != nil {
		return fmt.Errorf("failed to update time-off request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timeoff.ErrRequestNotFound
	}

	return nil
}

// HasApprovedLeaveOn implements timeoff.RequestRepository.
func (r *timeoffRepository) HasApprovedLeaveOn(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM time_off_requests
			WHERE employee_id = $1
			  AND status = 'APPROVED'
			  AND start_date <= $2
			  AND end_date >= $2
		)
	`, employeeID, date).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check approved leave: %w", err)
	}

	return exists, nil
}

// EmployeesOnApprovedLeave implements timeoff.RequestRepository.
func (r *timeoffRepository) EmployeesOnApprovedLeave(ctx context.Context, companyID string, date time.Time) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT DISTINCT employee_id
		FROM time_off_requests
		WHERE company_id = $1
		  AND status = 'APPROVED'
		  AND start_date <= $2
		  AND end_date >= $2
	`, companyID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees on leave: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// CountPendingByCompany implements timeoff.RequestRepository.
func (r *timeoffRepository) CountPendingByCompany(ctx context.Context, companyID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM time_off_requests WHERE company_id = $1 AND status = 'PENDING'`,
		companyID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending time-off requests: %w", err)
	}

	return count, nil
}

// InTransaction implements timeoff.RequestRepository.
func (r *timeoffRepository) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return WithTransaction(ctx, r.db, fn)
}
