package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anush47/salaryapp-backend-go/internal/domain/company"
	"github.com/anush47/salaryapp-backend-go/internal/domain/payment"
	"github.com/anush47/salaryapp-backend-go/internal/domain/period"
	"github.com/anush47/salaryapp-backend-go/internal/domain/purchase"
	"github.com/anush47/salaryapp-backend-go/internal/domain/salary"
)

type PaymentServiceImpl struct {
	paymentRepo  payment.PaymentRepository
	salaryRepo   salary.SalaryRepository
	companyRepo  company.CompanyRepository
	purchaseRepo purchase.PurchaseRepository
	locker       payment.PeriodLocker
	references   payment.ReferenceResolver
}

func NewPaymentService(
	paymentRepo payment.PaymentRepository,
	salaryRepo salary.SalaryRepository,
	companyRepo company.CompanyRepository,
	purchaseRepo purchase.PurchaseRepository,
	locker payment.PeriodLocker,
	references payment.ReferenceResolver,
) payment.PaymentService {
	return &PaymentServiceImpl{
		paymentRepo:  paymentRepo,
		salaryRepo:   salaryRepo,
		companyRepo:  companyRepo,
		purchaseRepo: purchaseRepo,
		locker:       locker,
		references:   references,
	}
}

func (s *PaymentServiceImpl) Generate(ctx context.Context, req payment.GenerateRequest) (payment.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return payment.PaymentResponse{}, err
	}

	p, err := period.Parse(req.Period)
	if err != nil {
		return payment.PaymentResponse{}, err
	}

	approved, err := s.purchaseRepo.IsApproved(ctx, req.CompanyID, p)
	if err != nil {
		return payment.PaymentResponse{}, fmt.Errorf("failed to check purchase: %w", err)
	}
	if !approved {
		return payment.PaymentResponse{}, purchase.ErrPeriodNotPurchased
	}

	comp, err := s.companyRepo.GetByID(ctx, req.CompanyID)
	if err != nil {
		return payment.PaymentResponse{}, err
	}

	var result payment.Payment
	err = s.locker.WithPeriodLock(ctx, req.CompanyID, p, func(ctx context.Context) error {
		salaries, err := s.salaryRepo.ListByCompanyPeriod(ctx, req.CompanyID, p)
		if err != nil {
			return fmt.Errorf("failed to load salaries: %w", err)
		}
		if len(salaries) == 0 {
			return payment.ErrNoSalaries
		}

		epfAmount, etfAmount := batchAmounts(salaries, comp.EtfRate)

		existing, err := s.paymentRepo.GetByCompanyPeriod(ctx, req.CompanyID, p)
		switch {
		case err == nil && !req.Regenerate:
			return payment.ErrPaymentAlreadyExists
		case err == nil:
			// Re-calculate rewrites the amounts in place; reference,
			// cheque and pay-day fields stay as entered.
			update := existing
			update.EPFAmount = epfAmount
			update.ETFAmount = etfAmount
			result, err = s.paymentRepo.UpdateAmounts(ctx, existing.ID, req.CompanyID, update)
			return err
		case !errors.Is(err, payment.ErrPaymentNotFound):
			return fmt.Errorf("failed to check existing payment: %w", err)
		}

		result, err = s.paymentRepo.Create(ctx, payment.Payment{
			CompanyID:     req.CompanyID,
			Period:        p,
			EPFAmount:     epfAmount,
			EPFSurcharges: decimal.Zero,
			ETFAmount:     etfAmount,
			ETFSurcharges: decimal.Zero,
		})
		return err
	})
	if err != nil {
		return payment.PaymentResponse{}, err
	}

	resp := mapToResponse(result)
	s.attachReference(ctx, comp, p, &resp)
	return resp, nil
}

// batchAmounts sums the statutory contributions over the period's salary
// records: EPF from each record's computed deduction, ETF from the company
// rate applied to each record's earnings base.
func batchAmounts(salaries []salary.Salary, etfRate decimal.Decimal) (epf, etf decimal.Decimal) {
	epf, etf = decimal.Zero, decimal.Zero
	for _, s := range salaries {
		epf = epf.Add(s.EPFAmount())
		etf = etf.Add(etfRate.Mul(s.EarningsBase))
	}
	return epf.Round(2), etf.Round(2)
}

// attachReference resolves the EPF reference number when the record has
// none yet. Lookup failures become warnings on the response.
func (s *PaymentServiceImpl) attachReference(ctx context.Context, comp company.Company, p period.Period, resp *payment.PaymentResponse) {
	if resp.EPFReferenceNo != nil || s.references == nil {
		return
	}

	ref, err := s.references.ResolveReference(ctx, comp.EmployerNo, p)
	if err != nil {
		resp.Warnings = append(resp.Warnings,
			fmt.Sprintf("EPF reference lookup for employer %s failed: %v", comp.EmployerNo, err))
		return
	}

	updated, err := s.paymentRepo.GetByID(ctx, resp.ID, comp.ID)
	if err != nil {
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("failed to store EPF reference: %v", err))
		return
	}
	updated.EPFReferenceNo = &ref
	if _, err := s.paymentRepo.Update(ctx, updated); err != nil {
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("failed to store EPF reference: %v", err))
		return
	}
	resp.EPFReferenceNo = &ref
}

func (s *PaymentServiceImpl) Get(ctx context.Context, id string, companyID string) (payment.PaymentResponse, error) {
	record, err := s.paymentRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return payment.PaymentResponse{}, err
	}
	return mapToResponse(record), nil
}

func (s *PaymentServiceImpl) ListByCompany(ctx context.Context, companyID string) ([]payment.PaymentResponse, error) {
	records, err := s.paymentRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	result := make([]payment.PaymentResponse, 0, len(records))
	for _, r := range records {
		result = append(result, mapToResponse(r))
	}
	return result, nil
}

func (s *PaymentServiceImpl) Update(ctx context.Context, companyID string, req payment.UpdateRequest) (payment.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return payment.PaymentResponse{}, err
	}

	record, err := s.paymentRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return payment.PaymentResponse{}, err
	}

	applyUpdate(&record, req)

	updated, err := s.paymentRepo.Update(ctx, record)
	if err != nil {
		return payment.PaymentResponse{}, err
	}
	return mapToResponse(updated), nil
}

func (s *PaymentServiceImpl) Delete(ctx context.Context, id string, companyID string) error {
	return s.paymentRepo.Delete(ctx, id, companyID)
}

// ========== HELPERS ==========

func applyUpdate(p *payment.Payment, req payment.UpdateRequest) {
	if req.EPFSurcharges != nil {
		p.EPFSurcharges = *req.EPFSurcharges
	}
	if req.EPFReferenceNo != nil {
		p.EPFReferenceNo = req.EPFReferenceNo
	}
	if req.EPFPaymentMethod != nil {
		p.EPFPaymentMethod = req.EPFPaymentMethod
	}
	if req.EPFChequeNo != nil {
		p.EPFChequeNo = req.EPFChequeNo
	}
	if req.EPFPayDay != nil {
		if d, err := time.Parse("2006-01-02", *req.EPFPayDay); err == nil {
			p.EPFPayDay = &d
		}
	}
	if req.ETFSurcharges != nil {
		p.ETFSurcharges = *req.ETFSurcharges
	}
	if req.ETFPaymentMethod != nil {
		p.ETFPaymentMethod = req.ETFPaymentMethod
	}
	if req.ETFChequeNo != nil {
		p.ETFChequeNo = req.ETFChequeNo
	}
	if req.ETFPayDay != nil {
		if d, err := time.Parse("2006-01-02", *req.ETFPayDay); err == nil {
			p.ETFPayDay = &d
		}
	}
	if req.Remark != nil {
		p.Remark = *req.Remark
	}
}

func mapToResponse(r payment.Payment) payment.PaymentResponse {
	return payment.PaymentResponse{
		ID:               r.ID,
		CompanyID:        r.CompanyID,
		Period:           r.Period.String(),
		EPFAmount:        r.EPFAmount,
		EPFSurcharges:    r.EPFSurcharges,
		EPFReferenceNo:   r.EPFReferenceNo,
		EPFPaymentMethod: r.EPFPaymentMethod,
		EPFChequeNo:      r.EPFChequeNo,
		EPFPayDay:        datePtrToString(r.EPFPayDay),
		ETFAmount:        r.ETFAmount,
		ETFSurcharges:    r.ETFSurcharges,
		ETFPaymentMethod: r.ETFPaymentMethod,
		ETFChequeNo:      r.ETFChequeNo,
		ETFPayDay:        datePtrToString(r.ETFPayDay),
		Remark:           r.Remark,
	}
}

func datePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
