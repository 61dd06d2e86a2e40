package employee

import "context"

// EmployeeRepository is the read-only view onto the employee store.
type EmployeeRepository interface {
	// GetByID retrieves an employee with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	// ListActiveByCompany returns all active employees of a company
	ListActiveByCompany(ctx context.Context, companyID string) ([]Employee, error)

	// CountActiveByCompany returns the active headcount of a company
	CountActiveByCompany(ctx context.Context, companyID string) (int64, error)

	// ListCompanyIDs returns every company that has active employees,
	// used by the batch recalculation sweep
	ListCompanyIDs(ctx context.Context) ([]string, error)
}
