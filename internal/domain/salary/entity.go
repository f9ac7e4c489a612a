package salary

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/anush47/salaryapp-backend-go/internal/domain/attendance"
	"github.com/anush47/salaryapp-backend-go/internal/domain/employee"
	"github.com/anush47/salaryapp-backend-go/internal/domain/period"
)

// EPFRate is the fixed statutory employee deduction rate. The ETF rate is
// company configuration, not a constant.
var EPFRate = decimal.NewFromFloat(0.08)

// Portion is an aggregated amount with the reason it was applied.
type Portion struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason,omitempty"`
}

// Salary is one employee's computed record for a period. At most one exists
// per (employee, period).
type Salary struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Period     period.Period
	Basic      decimal.Decimal
	HolidayPay decimal.Decimal
	InOut      []attendance.InOutEvent
	OT         Portion
	NoPay      Portion

	// Structure is the payment structure resolved at generation time.
	// Snapshotted so later company-level edits do not retroactively alter
	// historical salaries.
	Structure employee.PaymentStructure

	// EarningsBase is the statutory base the EPF deduction was computed
	// from; the payment batch derives the ETF contribution from it.
	EarningsBase decimal.Decimal

	AdvanceAmount decimal.Decimal
	FinalSalary   decimal.Decimal
	Remark        string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	EmployeeName *string
	MemberNo     *int
}

// EPFAmount returns the system-computed EPF deduction of the snapshot.
func (s Salary) EPFAmount() decimal.Decimal {
	return s.Structure.EPFAmount()
}
