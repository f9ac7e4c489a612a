package purchase

import (
	"context"

	"github.com/anush47/salaryapp-backend-go/internal/domain/period"
)

type PurchaseRepository interface {
	// IsApproved reports whether generation for the company period has
	// been purchased and approved.
	IsApproved(ctx context.Context, companyID string, p period.Period) (bool, error)
}
