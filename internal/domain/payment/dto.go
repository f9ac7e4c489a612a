package payment

import (
	"github.com/shopspring/decimal"

	"github.com/anush47/salaryapp-backend-go/internal/pkg/validator"
)

// GenerateRequest produces the EPF/ETF batch for a company period. With
// Regenerate the amounts are recomputed in place; reference numbers, cheque
// numbers and pay-day fields already entered stay untouched.
type GenerateRequest struct {
	CompanyID  string `json:"company_id"`
	Period     string `json:"period"`
	Regenerate bool   `json:"regenerate,omitempty"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CompanyID) {
		errs = append(errs, validator.ValidationError{Field: "company_id", Message: "is required"})
	}
	if _, ok := validator.IsValidPeriod(r.Period); !ok {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "must be in YYYY-MM format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PaymentResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Period    string `json:"period"`

	EPFAmount        decimal.Decimal `json:"epf_amount"`
	EPFSurcharges    decimal.Decimal `json:"epf_surcharges"`
	EPFReferenceNo   *string         `json:"epf_reference_no,omitempty"`
	EPFPaymentMethod *string         `json:"epf_payment_method,omitempty"`
	EPFChequeNo      *string         `json:"epf_cheque_no,omitempty"`
	EPFPayDay        *string         `json:"epf_pay_day,omitempty"`

	ETFAmount        decimal.Decimal `json:"etf_amount"`
	ETFSurcharges    decimal.Decimal `json:"etf_surcharges"`
	ETFPaymentMethod *string         `json:"etf_payment_method,omitempty"`
	ETFChequeNo      *string         `json:"etf_cheque_no,omitempty"`
	ETFPayDay        *string         `json:"etf_pay_day,omitempty"`

	Remark string `json:"remark,omitempty"`

	// Warnings carries non-fatal findings such as a failed reference-number
	// lookup; they never block the numeric computation.
	Warnings []string `json:"warnings,omitempty"`
}

// UpdateRequest edits the payment-method fields entered from the form.
type UpdateRequest struct {
	ID               string           `json:"-"`
	EPFSurcharges    *decimal.Decimal `json:"epf_surcharges,omitempty"`
	EPFReferenceNo   *string          `json:"epf_reference_no,omitempty"`
	EPFPaymentMethod *string          `json:"epf_payment_method,omitempty"`
	EPFChequeNo      *string          `json:"epf_cheque_no,omitempty"`
	EPFPayDay        *string          `json:"epf_pay_day,omitempty"`
	ETFSurcharges    *decimal.Decimal `json:"etf_surcharges,omitempty"`
	ETFPaymentMethod *string          `json:"etf_payment_method,omitempty"`
	ETFChequeNo      *string          `json:"etf_cheque_no,omitempty"`
	ETFPayDay        *string          `json:"etf_pay_day,omitempty"`
	Remark           *string          `json:"remark,omitempty"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if r.EPFSurcharges != nil && r.EPFSurcharges.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "epf_surcharges", Message: "must be non-negative"})
	}
	if r.ETFSurcharges != nil && r.ETFSurcharges.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "etf_surcharges", Message: "must be non-negative"})
	}
	if r.EPFPayDay != nil {
		if _, ok := validator.IsValidDate(*r.EPFPayDay); !ok {
			errs = append(errs, validator.ValidationError{Field: "epf_pay_day", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if r.ETFPayDay != nil {
		if _, ok := validator.IsValidDate(*r.ETFPayDay); !ok {
			errs = append(errs, validator.ValidationError{Field: "etf_pay_day", Message: "must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
