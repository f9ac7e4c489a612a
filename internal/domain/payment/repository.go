package payment

import (
	"context"

	"github.com/anush47/salaryapp-backend-go/internal/domain/period"
)

// PaymentRepository defines persistence for payment batches. Create must be
// atomic against the (company, period) natural key.
type PaymentRepository interface {
	Create(ctx context.Context, p Payment) (Payment, error)
	GetByID(ctx context.Context, id string, companyID string) (Payment, error)
	GetByCompanyPeriod(ctx context.Context, companyID string, p period.Period) (Payment, error)
	ListByCompany(ctx context.Context, companyID string) ([]Payment, error)

	// UpdateAmounts rewrites only the computed amounts, leaving the
	// reference, cheque and pay-day fields as entered.
	UpdateAmounts(ctx context.Context, id string, companyID string, update Payment) (Payment, error)

	Update(ctx context.Context, p Payment) (Payment, error)
	Delete(ctx context.Context, id string, companyID string) error
}

// PeriodLocker serializes payment generation for one (company, period)
// behind a lock, so a batch never reads a partially-written salary set from
// a salary generation still in flight.
type PeriodLocker interface {
	WithPeriodLock(ctx context.Context, companyID string, p period.Period, fn func(ctx context.Context) error) error
}

// ReferenceResolver looks up the statutory EPF reference number for an
// employer and period. It is an external collaborator; a failed lookup is a
// warning on the payment, not a failure of the computation.
type ReferenceResolver interface {
	ResolveReference(ctx context.Context, employerNo string, p period.Period) (string, error)
}

// PaymentService defines the batch operations exposed to callers.
type PaymentService interface {
	Generate(ctx context.Context, req GenerateRequest) (PaymentResponse, error)
	Get(ctx context.Context, id string, companyID string) (PaymentResponse, error)
	ListByCompany(ctx context.Context, companyID string) ([]PaymentResponse, error)
	Update(ctx context.Context, companyID string, req UpdateRequest) (PaymentResponse, error)
	Delete(ctx context.Context, id string, companyID string) error
}
