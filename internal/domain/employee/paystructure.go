package employee

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// EPFDeductionName is the system-computed deduction entry. It is read-only
// to the user and recalculated whenever the earnings base changes.
const EPFDeductionName = "EPF 8%"

// Amount is a payment-structure amount: either a committed decimal value or
// a display-only "min-max" range. Range amounts carry no committed value and
// are excluded from every sum by construction.
type Amount struct {
	value   decimal.Decimal
	min     decimal.Decimal
	max     decimal.Decimal
	isRange bool
}

// NewAmount returns a committed amount.
func NewAmount(v decimal.Decimal) Amount {
	return Amount{value: v}
}

// NewRangeAmount returns a display-only range amount.
func NewRangeAmount(min, max decimal.Decimal) Amount {
	return Amount{min: min, max: max, isRange: true}
}

// ParseAmount parses either a plain decimal ("2500" / "2500.50") or a
// "min-max" range ("2000-3000").
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, fmt.Errorf("amount is empty")
	}

	// A dash past position 0 splits a range; a leading dash is a sign.
	if idx := strings.Index(s[1:], "-"); idx >= 0 {
		minStr, maxStr := s[:idx+1], s[idx+2:]
		min, err := decimal.NewFromString(strings.TrimSpace(minStr))
		if err != nil {
			return Amount{}, fmt.Errorf("invalid range minimum %q", minStr)
		}
		max, err := decimal.NewFromString(strings.TrimSpace(maxStr))
		if err != nil {
			return Amount{}, fmt.Errorf("invalid range maximum %q", maxStr)
		}
		if max.LessThan(min) {
			return Amount{}, fmt.Errorf("range maximum %s is below minimum %s", max, min)
		}
		return NewRangeAmount(min, max), nil
	}

	v, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q", s)
	}
	return NewAmount(v), nil
}

// IsRange reports whether the amount is a display-only range.
func (a Amount) IsRange() bool { return a.isRange }

// Value returns the committed value and false for range amounts.
func (a Amount) Value() (decimal.Decimal, bool) {
	if a.isRange {
		return decimal.Zero, false
	}
	return a.value, true
}

// Range returns the display bounds of a range amount.
func (a Amount) Range() (min, max decimal.Decimal, ok bool) {
	if !a.isRange {
		return decimal.Zero, decimal.Zero, false
	}
	return a.min, a.max, true
}

func (a Amount) String() string {
	if a.isRange {
		return a.min.String() + "-" + a.max.String()
	}
	return a.value.String()
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Bare numbers are accepted for convenience.
		var v decimal.Decimal
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("amount must be a string or number")
		}
		*a = NewAmount(v)
		return nil
	}
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Component is one named addition or deduction layered on top of basic pay.
type Component struct {
	Name                string `json:"name"`
	Amount              Amount `json:"amount"`
	AffectTotalEarnings bool   `json:"affect_total_earnings"`
}

// PaymentStructure is the set of configurable additions and deductions.
type PaymentStructure struct {
	Additions  []Component `json:"additions"`
	Deductions []Component `json:"deductions"`
}

// Clone deep-copies the structure so a salary snapshot is not aliased to the
// live company or employee configuration.
func (p PaymentStructure) Clone() PaymentStructure {
	out := PaymentStructure{
		Additions:  make([]Component, len(p.Additions)),
		Deductions: make([]Component, len(p.Deductions)),
	}
	copy(out.Additions, p.Additions)
	copy(out.Deductions, p.Deductions)
	return out
}

// AdditionsTotal sums all committed addition amounts.
func (p PaymentStructure) AdditionsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, c := range p.Additions {
		if v, ok := c.Amount.Value(); ok {
			total = total.Add(v)
		}
	}
	return total
}

// PayableDeductionsTotal sums committed deduction amounts that reduce the
// final salary. The EPF entry is informational on the payslip and only
// subtracts when explicitly flagged as earnings-affecting.
func (p PaymentStructure) PayableDeductionsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, c := range p.Deductions {
		if c.Name == EPFDeductionName && !c.AffectTotalEarnings {
			continue
		}
		if v, ok := c.Amount.Value(); ok {
			total = total.Add(v)
		}
	}
	return total
}

// EarningsAffectingAdditions sums committed additions flagged into the
// statutory earnings base.
func (p PaymentStructure) EarningsAffectingAdditions() decimal.Decimal {
	total := decimal.Zero
	for _, c := range p.Additions {
		if !c.AffectTotalEarnings {
			continue
		}
		if v, ok := c.Amount.Value(); ok {
			total = total.Add(v)
		}
	}
	return total
}

// EarningsAffectingDeductions sums committed deductions flagged into the
// statutory earnings base, always excluding the EPF entry itself.
func (p PaymentStructure) EarningsAffectingDeductions() decimal.Decimal {
	total := decimal.Zero
	for _, c := range p.Deductions {
		if c.Name == EPFDeductionName || !c.AffectTotalEarnings {
			continue
		}
		if v, ok := c.Amount.Value(); ok {
			total = total.Add(v)
		}
	}
	return total
}

// EPFAmount returns the current value of the EPF deduction entry.
func (p PaymentStructure) EPFAmount() decimal.Decimal {
	for _, c := range p.Deductions {
		if c.Name == EPFDeductionName {
			if v, ok := c.Amount.Value(); ok {
				return v
			}
		}
	}
	return decimal.Zero
}

// SetEPF writes the system-computed EPF deduction, inserting the entry if
// the structure does not carry one yet.
func (p *PaymentStructure) SetEPF(amount decimal.Decimal) {
	for i, c := range p.Deductions {
		if c.Name == EPFDeductionName {
			p.Deductions[i].Amount = NewAmount(amount)
			return
		}
	}
	p.Deductions = append(p.Deductions, Component{
		Name:   EPFDeductionName,
		Amount: NewAmount(amount),
	})
}
