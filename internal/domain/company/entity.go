package company

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/anush47/salaryapp-backend-go/internal/domain/employee"
)

// Company carries the defaults employees inherit plus the statutory
// identifiers used for the EPF/ETF payment batch.
type Company struct {
	ID            string
	Name          string
	EmployerNo    string // zonal EPF employer number, e.g. "A/12345"
	Address       *string
	EtfRate       decimal.Decimal // configuration; distinct from the fixed 8% EPF rate
	Shifts        []employee.Shift
	WorkingDays   employee.WorkingDays
	Probabilities employee.Probabilities
	Structure     employee.PaymentStructure
	Calendar      string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Defaults returns the inheritable configuration slice of the company.
func (c Company) Defaults() employee.CompanyDefaults {
	return employee.CompanyDefaults{
		Shifts:        c.Shifts,
		WorkingDays:   c.WorkingDays,
		Probabilities: c.Probabilities,
		Structure:     c.Structure,
		Calendar:      c.Calendar,
	}
}
