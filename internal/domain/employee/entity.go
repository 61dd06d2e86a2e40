package employee

import "time"

// Employee is the read model this engine needs. Employee lifecycle
// (hiring, profiles, biometric enrollment) is owned elsewhere; here an
// employee is a badge identity to attach events and summaries to.
type Employee struct {
	ID           string
	CompanyID    string
	FullName     string
	EmployeeCode *string
	Department   *string
	IsActive     bool
	CreatedAt    time.Time
}
