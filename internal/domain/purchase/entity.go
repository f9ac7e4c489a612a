package purchase

import (
	"time"

	"github.com/anush47/salaryapp-backend-go/internal/domain/period"
)

// PurchaseStatus is the entitlement state of a company period.
type PurchaseStatus string

const (
	StatusApproved PurchaseStatus = "approved"
	StatusPending  PurchaseStatus = "pending"
	StatusRejected PurchaseStatus = "rejected"
)

// Purchase records whether a company has bought generation for a period.
// The engine consults it as a yes/no gate only.
type Purchase struct {
	ID        string
	CompanyID string
	Period    period.Period
	Status    PurchaseStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Purchase) Approved() bool {
	return p.Status == StatusApproved
}
