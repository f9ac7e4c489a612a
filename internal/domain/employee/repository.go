package employee

import "context"

// EmployeeRepository defines read access to the employee roster. Records are
// created and edited by the CRUD screens; the engine consumes them read-only.
// All methods include companyID to prevent cross-company data access.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	// GetActiveByCompanyID returns the active roster for a company.
	GetActiveByCompanyID(ctx context.Context, companyID string) ([]Employee, error)

	// GetByIDs returns the named employees, active or not.
	GetByIDs(ctx context.Context, ids []string, companyID string) ([]Employee, error)
}
