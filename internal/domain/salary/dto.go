package salary

import (
	"github.com/shopspring/decimal"

	"github.com/anush47/salaryapp-backend-go/internal/domain/attendance"
	"github.com/anush47/salaryapp-backend-go/internal/domain/employee"
	"github.com/anush47/salaryapp-backend-go/internal/pkg/validator"
)

// GenerateRequest drives salary generation for one company period. When
// EmployeeIDs is empty the whole active roster is processed. InOutCSV is
// required only for employees on the calc OT method. Seed pins the random
// simulation for reproducible runs; zero means seed from the clock.
type GenerateRequest struct {
	CompanyID   string   `json:"company_id"`
	Period      string   `json:"period"`
	EmployeeIDs []string `json:"employee_ids,omitempty"`
	InOutCSV    string   `json:"in_out_csv,omitempty"`
	Update      bool     `json:"update,omitempty"`
	Seed        *int64   `json:"seed,omitempty"`
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

// GenerationFailure is a per-employee failure inside a batch. Batch-level
// partial success is expected behavior, not an error.
type GenerationFailure struct {
	EmployeeID string `json:"employee_id"`
	Message    string `json:"message"`
}

type GenerateResponse struct {
	Salaries []SalaryResponse     `json:"salaries"`
	Exists   []string             `json:"exists"`
	Failed   []GenerationFailure  `json:"failed,omitempty"`
	Warnings []attendance.Warning `json:"warnings,omitempty"`
}

type SalaryResponse struct {
	ID            string                    `json:"id"`
	EmployeeID    string                    `json:"employee_id"`
	EmployeeName  string                    `json:"employee_name,omitempty"`
	MemberNo      int                       `json:"member_no,omitempty"`
	Period        string                    `json:"period"`
	Basic         decimal.Decimal           `json:"basic"`
	HolidayPay    decimal.Decimal           `json:"holiday_pay"`
	InOut         []attendance.InOutEvent   `json:"in_out"`
	OT            Portion                   `json:"ot"`
	NoPay         Portion                   `json:"no_pay"`
	Structure     employee.PaymentStructure `json:"payment_structure"`
	EarningsBase  decimal.Decimal           `json:"earnings_base"`
	EPFAmount     decimal.Decimal           `json:"epf_amount"`
	AdvanceAmount decimal.Decimal           `json:"advance_amount"`
	FinalSalary   decimal.Decimal           `json:"final_salary"`
	Remark        string                    `json:"remark,omitempty"`
}

// UpdateRequest edits the manually-entered fields of a salary and triggers
// recomputation of the EPF deduction and final salary.
type UpdateRequest struct {
	ID            string           `json:"-"`
	Remark        *string          `json:"remark,omitempty"`
	AdvanceAmount *decimal.Decimal `json:"advance_amount,omitempty"`
	OTAmount      *decimal.Decimal `json:"ot_amount,omitempty"`
	OTReason      *string          `json:"ot_reason,omitempty"`
	NoPayAmount   *decimal.Decimal `json:"no_pay_amount,omitempty"`
	NoPayReason   *string          `json:"no_pay_reason,omitempty"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if r.AdvanceAmount != nil && r.AdvanceAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "advance_amount", Message: "must be non-negative"})
	}
	if r.OTAmount != nil && r.OTAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "ot_amount", Message: "must be non-negative"})
	}
	if r.NoPayAmount != nil && r.NoPayAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "no_pay_amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Filter struct {
	Period     string
	EmployeeID string
	Page       int
	Limit      int
}

type ListResponse struct {
	Data       []SalaryResponse `json:"data"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
}
