package salary

import (
	"context"

	"github.com/anush47/salaryapp-backend-go/internal/domain/period"
)

// SalaryRepository defines persistence for salary records. Create must be
// atomic against the (employee, period) natural key: a concurrent duplicate
// insert surfaces as ErrSalaryAlreadyExists, never as a second row.
type SalaryRepository interface {
	Create(ctx context.Context, s Salary) (Salary, error)
	GetByID(ctx context.Context, id string, companyID string) (Salary, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, p period.Period, companyID string) (Salary, error)
	ListByCompanyPeriod(ctx context.Context, companyID string, p period.Period) ([]Salary, error)
	List(ctx context.Context, companyID string, filter Filter) ([]Salary, int64, error)
	Update(ctx context.Context, s Salary) (Salary, error)
	Delete(ctx context.Context, id string, companyID string) error
}

// SalaryService defines the engine operations exposed to callers.
type SalaryService interface {
	// Generate computes and persists salaries for a company period.
	// Employees that already have a salary are reported in exists, not
	// overwritten; per-employee failures do not abort the batch.
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)

	Get(ctx context.Context, id string, companyID string) (SalaryResponse, error)
	List(ctx context.Context, companyID string, filter Filter) (ListResponse, error)
	Update(ctx context.Context, companyID string, req UpdateRequest) (SalaryResponse, error)
	Delete(ctx context.Context, id string, companyID string) error
}
