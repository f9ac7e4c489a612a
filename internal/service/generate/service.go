package generate

import (
	"context"
	"errors"

	"github.com/anush47/salaryapp-backend-go/internal/domain/payment"
	"github.com/anush47/salaryapp-backend-go/internal/domain/period"
	"github.com/anush47/salaryapp-backend-go/internal/domain/salary"
	"github.com/anush47/salaryapp-backend-go/internal/pkg/validator"
	"github.com/anush47/salaryapp-backend-go/internal/service/document"
)

// Step names in the order the saga runs them.
const (
	StepSalaries  = "salaries"
	StepPayment   = "payment"
	StepDocuments = "documents"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Request drives one end-to-end run: generate the period's salaries, build
// the EPF/ETF payment batch from them, then render the documents.
type Request struct {
	CompanyID   string   `json:"company_id"`
	Period      string   `json:"period"`
	EmployeeIDs []string `json:"employee_ids,omitempty"`
	InOutCSV    string   `json:"in_out_csv,omitempty"`

	// Update and Regenerate make the first two steps overwrite existing
	// records, so a failed run can be retried without manual cleanup.
	Update     bool `json:"update,omitempty"`
	Regenerate bool `json:"regenerate,omitempty"`

	Seed *int64 `json:"seed,omitempty"`
}

func (r *Request) Validate() error {
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

type StepResult struct {
	Step   string `json:"step"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Report carries the outcome of every step. A step that failed stops the
// later ones; the earlier results stay committed and the run can be
// repeated to pick up where it stopped.
type Report struct {
	Steps     []StepResult              `json:"steps"`
	Salaries  *salary.GenerateResponse  `json:"salaries,omitempty"`
	Payment   *payment.PaymentResponse  `json:"payment,omitempty"`
	Documents *document.Result          `json:"documents,omitempty"`
}

type GenerateService interface {
	Run(ctx context.Context, req Request) (Report, error)
}

type GenerateServiceImpl struct {
	salaries  salary.SalaryService
	payments  payment.PaymentService
	documents document.DocumentService
}

func NewGenerateService(salaries salary.SalaryService, payments payment.PaymentService, documents document.DocumentService) GenerateService {
	return &GenerateServiceImpl{
		salaries:  salaries,
		payments:  payments,
		documents: documents,
	}
}

func (s *GenerateServiceImpl) Run(ctx context.Context, req Request) (Report, error) {
	if err := req.Validate(); err != nil {
		return Report{}, err
	}

	p, err := period.Parse(req.Period)
	if err != nil {
		return Report{}, err
	}

	var report Report

	salResp, err := s.salaries.Generate(ctx, salary.GenerateRequest{
		CompanyID:   req.CompanyID,
		Period:      req.Period,
		EmployeeIDs: req.EmployeeIDs,
		InOutCSV:    req.InOutCSV,
		Update:      req.Update,
		Seed:        req.Seed,
	})
	if err != nil {
		report.Steps = append(report.Steps, StepResult{Step: StepSalaries, Status: StatusFailed, Error: err.Error()})
		report.skipRemaining(StepPayment, StepDocuments)
		return report, err
	}
	report.Salaries = &salResp
	report.Steps = append(report.Steps, StepResult{Step: StepSalaries, Status: StatusSuccess})

	payResp, err := s.payments.Generate(ctx, payment.GenerateRequest{
		CompanyID:  req.CompanyID,
		Period:     req.Period,
		Regenerate: req.Regenerate,
	})
	// An existing batch is not a failure of the run when the salaries step
	// only confirmed records that were already there.
	if errors.Is(err, payment.ErrPaymentAlreadyExists) && len(salResp.Salaries) == 0 {
		payResp, err = s.payments.Generate(ctx, payment.GenerateRequest{
			CompanyID:  req.CompanyID,
			Period:     req.Period,
			Regenerate: true,
		})
	}
	if err != nil {
		report.Steps = append(report.Steps, StepResult{Step: StepPayment, Status: StatusFailed, Error: err.Error()})
		report.skipRemaining(StepDocuments)
		return report, nil
	}
	report.Payment = &payResp
	report.Steps = append(report.Steps, StepResult{Step: StepPayment, Status: StatusSuccess})

	docResult, err := s.documents.GenerateAll(ctx, req.CompanyID, p)
	if err != nil {
		report.Steps = append(report.Steps, StepResult{Step: StepDocuments, Status: StatusFailed, Error: err.Error()})
		return report, nil
	}
	report.Documents = &docResult
	report.Steps = append(report.Steps, StepResult{Step: StepDocuments, Status: StatusSuccess})

	return report, nil
}

func (r *Report) skipRemaining(steps ...string) {
	for _, step := range steps {
		r.Steps = append(r.Steps, StepResult{Step: step, Status: StatusSkipped})
	}
}
