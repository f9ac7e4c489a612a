package salary

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anush47/salaryapp-backend-go/internal/domain/attendance"
	"github.com/anush47/salaryapp-backend-go/internal/domain/employee"
	"github.com/anush47/salaryapp-backend-go/internal/domain/period"
	"github.com/anush47/salaryapp-backend-go/internal/domain/salary"
)

// Aggregate folds a period's per-event results into one salary record. The
// effective payment structure is snapshotted so later company-level edits
// never alter this record, and the EPF deduction and final salary are
// derived from the snapshot. OT and no-pay reasons summarize totals rather
// than concatenating every event description.
func Aggregate(emp employee.Employee, p period.Period, events []attendance.InOutEvent, structure employee.PaymentStructure) salary.Salary {
	rate := emp.HourlyRate()

	otAmount, otHours := decimal.Zero, decimal.Zero
	noPayAmount, noPayHours := decimal.Zero, decimal.Zero
	holidayPay := decimal.Zero
	for _, ev := range events {
		otAmount = otAmount.Add(ev.OT)
		otHours = otHours.Add(ev.OTHours)
		noPayAmount = noPayAmount.Add(ev.NoPay)
		if ev.NoPay.IsPositive() && rate.IsPositive() {
			noPayHours = noPayHours.Add(ev.NoPay.Div(rate))
		}
		if ev.Holiday {
			holidayPay = holidayPay.Add(ev.WorkingHours.Mul(rate))
		}
	}

	s := salary.Salary{
		CompanyID:  emp.CompanyID,
		EmployeeID: emp.ID,
		Period:     p,
		Basic:      emp.Basic,
		HolidayPay: holidayPay.Round(2),
		InOut:      events,
		OT: salary.Portion{
			Amount: otAmount.Round(2),
			Reason: portionReason(otHours, "overtime"),
		},
		NoPay: salary.Portion{
			Amount: noPayAmount.Round(2),
			Reason: portionReason(noPayHours, "no-pay"),
		},
		Structure:     structure.Clone(),
		AdvanceAmount: decimal.Zero,
	}
	Recompute(&s)
	return s
}

func portionReason(hours decimal.Decimal, kind string) string {
	if !hours.IsPositive() {
		return ""
	}
	return fmt.Sprintf("%s %s hours", hours.Round(2), kind)
}

// Recompute rewrites the derived fields of a salary from its inputs:
//
//	earningsBase = basic + holidayPay + earnings-affecting additions
//	             - earnings-affecting deductions - noPay
//	EPF 8%       = 0.08 * earningsBase
//	finalSalary  = basic + holidayPay + ot + additions - deductions - noPay
//
// where the EPF entry joins the deduction sum only when flagged as
// earnings-affecting. Recompute runs after every mutation of any earnings
// input so the EPF entry can never go stale.
func Recompute(s *salary.Salary) {
	base := s.Basic.
		Add(s.HolidayPay).
		Add(s.Structure.EarningsAffectingAdditions()).
		Sub(s.Structure.EarningsAffectingDeductions()).
		Sub(s.NoPay.Amount)
	if base.IsNegative() {
		base = decimal.Zero
	}
	s.EarningsBase = base.Round(2)
	s.Structure.SetEPF(salary.EPFRate.Mul(s.EarningsBase).Round(2))

	s.FinalSalary = s.Basic.
		Add(s.HolidayPay).
		Add(s.OT.Amount).
		Add(s.Structure.AdditionsTotal()).
		Sub(s.Structure.PayableDeductionsTotal()).
		Sub(s.NoPay.Amount).
		Round(2)
}

// applyUpdate merges an edit request into an existing record and recomputes
// the derived fields. Manually-entered fields persist as given.
func applyUpdate(s *salary.Salary, req salary.UpdateRequest) {
	if req.Remark != nil {
		s.Remark = *req.Remark
	}
	if req.AdvanceAmount != nil {
		s.AdvanceAmount = *req.AdvanceAmount
	}
	if req.OTAmount != nil {
		s.OT.Amount = *req.OTAmount
	}
	if req.OTReason != nil {
		s.OT.Reason = *req.OTReason
	}
	if req.NoPayAmount != nil {
		s.NoPay.Amount = *req.NoPayAmount
	}
	if req.NoPayReason != nil {
		s.NoPay.Reason = *req.NoPayReason
	}
	s.UpdatedAt = time.Now().UTC()
	Recompute(s)
}
