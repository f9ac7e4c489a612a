package company

import "context"

// CompanyRepository defines read access to company configuration.
type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (Company, error)
}
