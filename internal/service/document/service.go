package document

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/anush47/salaryapp-backend-go/internal/domain/company"
	"github.com/anush47/salaryapp-backend-go/internal/domain/payment"
	"github.com/anush47/salaryapp-backend-go/internal/domain/period"
	"github.com/anush47/salaryapp-backend-go/internal/domain/salary"
	"github.com/anush47/salaryapp-backend-go/internal/pkg/storage"
)

// DocumentService renders the period's documents: one salary sheet for the
// company plus a payslip per salary record. Files go through FileStorage
// and the returned paths are storage keys.
type DocumentService interface {
	GenerateAll(ctx context.Context, companyID string, p period.Period) (Result, error)
}

type Result struct {
	SalarySheetPath string   `json:"salary_sheet_path"`
	PayslipPaths    []string `json:"payslip_paths"`
}

type DocumentServiceImpl struct {
	salaryRepo  salary.SalaryRepository
	companyRepo company.CompanyRepository
	files       storage.FileStorage
}

func NewDocumentService(salaryRepo salary.SalaryRepository, companyRepo company.CompanyRepository, files storage.FileStorage) DocumentService {
	return &DocumentServiceImpl{
		salaryRepo:  salaryRepo,
		companyRepo: companyRepo,
		files:       files,
	}
}

func (s *DocumentServiceImpl) GenerateAll(ctx context.Context, companyID string, p period.Period) (Result, error) {
	comp, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return Result{}, err
	}

	salaries, err := s.salaryRepo.ListByCompanyPeriod(ctx, companyID, p)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load salaries: %w", err)
	}
	if len(salaries) == 0 {
		return Result{}, payment.ErrNoSalaries
	}

	var result Result

	sheet, err := renderSalarySheet(comp, p, salaries)
	if err != nil {
		return Result{}, fmt.Errorf("failed to render salary sheet: %w", err)
	}
	sheetKey := fmt.Sprintf("documents/%s/%s/salary-sheet.pdf", companyID, p)
	if result.SalarySheetPath, err = s.files.Upload(ctx, bytes.NewReader(sheet), sheetKey, "application/pdf"); err != nil {
		return Result{}, fmt.Errorf("failed to store salary sheet: %w", err)
	}

	for _, record := range salaries {
		slip, err := renderPayslip(comp, p, record)
		if err != nil {
			return Result{}, fmt.Errorf("failed to render payslip for %s: %w", record.EmployeeID, err)
		}
		key := fmt.Sprintf("documents/%s/%s/payslip-%s.pdf", companyID, p, record.EmployeeID)
		path, err := s.files.Upload(ctx, bytes.NewReader(slip), key, "application/pdf")
		if err != nil {
			return Result{}, fmt.Errorf("failed to store payslip for %s: %w", record.EmployeeID, err)
		}
		result.PayslipPaths = append(result.PayslipPaths, path)
	}

	return result, nil
}

func renderSalarySheet(comp company.Company, p period.Period, salaries []salary.Salary) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Salary Sheet - %s", comp.Name))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Employer No: %s    Period: %s    Generated: %s",
		comp.EmployerNo, p, time.Now().UTC().Format("2006-01-02")))
	pdf.Ln(12)

	headers := []string{"Member No", "Name", "Basic", "OT", "No Pay", "EPF 8%", "Final Salary"}
	widths := []float64{28, 72, 32, 30, 30, 32, 36}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, record := range salaries {
		memberNo, name := "", record.EmployeeID
		if record.MemberNo != nil {
			memberNo = strconv.Itoa(*record.MemberNo)
		}
		if record.EmployeeName != nil {
			name = *record.EmployeeName
		}
		cells := []string{
			memberNo,
			name,
			record.Basic.StringFixed(2),
			record.OT.Amount.StringFixed(2),
			record.NoPay.Amount.StringFixed(2),
			record.EPFAmount().StringFixed(2),
			record.FinalSalary.StringFixed(2),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 7, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderPayslip(comp company.Company, p period.Period, record salary.Salary) ([]byte, error) {
	name := record.EmployeeID
	if record.EmployeeName != nil {
		name = *record.EmployeeName
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Company: %s (%s)", comp.Name, comp.EmployerNo))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", name))
	if record.MemberNo != nil {
		pdf.Ln(7)
		pdf.Cell(0, 8, fmt.Sprintf("Member No: %d", *record.MemberNo))
	}
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", p))
	pdf.Ln(10)

	line := func(label string, value string) {
		pdf.Cell(90, 7, label)
		pdf.CellFormat(60, 7, value, "", 0, "R", false, 0, "")
		pdf.Ln(7)
	}

	line("Basic", record.Basic.StringFixed(2))
	line("Holiday Pay", record.HolidayPay.StringFixed(2))
	line(fmt.Sprintf("Overtime (%s)", record.OT.Reason), record.OT.Amount.StringFixed(2))
	for _, a := range record.Structure.Additions {
		line(a.Name, a.Amount.String())
	}
	pdf.Ln(3)
	line(fmt.Sprintf("No Pay (%s)", record.NoPay.Reason), "-"+record.NoPay.Amount.StringFixed(2))
	for _, d := range record.Structure.Deductions {
		line(d.Name, "-"+d.Amount.String())
	}
	if !record.AdvanceAmount.IsZero() {
		line("Advance (already paid)", record.AdvanceAmount.StringFixed(2))
	}
	pdf.Ln(5)
	pdf.SetFont("Helvetica", "B", 12)
	line("Final Salary", record.FinalSalary.StringFixed(2))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
