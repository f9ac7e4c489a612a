package payment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/anush47/salaryapp-backend-go/internal/domain/period"
)

// Payment is the statutory EPF/ETF batch for one company period, aggregated
// from that period's salary records. At most one exists per (company, period).
type Payment struct {
	ID        string
	CompanyID string
	Period    period.Period

	EPFAmount        decimal.Decimal
	EPFSurcharges    decimal.Decimal
	EPFReferenceNo   *string
	EPFPaymentMethod *string
	EPFChequeNo      *string
	EPFPayDay        *time.Time

	ETFAmount        decimal.Decimal
	ETFSurcharges    decimal.Decimal
	ETFPaymentMethod *string
	ETFChequeNo      *string
	ETFPayDay        *time.Time

	Remark    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
