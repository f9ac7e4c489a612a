package salary

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/anush47/salaryapp-backend-go/internal/domain/attendance"
	"github.com/anush47/salaryapp-backend-go/internal/domain/employee"
)

// CalculateEvent fills the computed fields of one in/out pair under the
// given day context and OT method. The random method never reaches here;
// its events come pre-computed from the simulator.
func CalculateEvent(dc DayContext, ev attendance.InOutEvent, rate decimal.Decimal, method employee.OTMethod) attendance.InOutEvent {
	worked := hoursBetween(ev.In, ev.Out).Sub(dc.BreakHours)
	if worked.IsNegative() {
		worked = decimal.Zero
	}
	worked = worked.Round(2)
	ev.WorkingHours = worked
	ev.OTHours = decimal.Zero
	ev.OT = decimal.Zero
	ev.NoPay = decimal.Zero

	// Work on a holiday or an off day earns holiday pay instead of OT or
	// no-pay; the aggregator converts the flagged hours into the amount.
	if dc.IsHoliday || dc.Category == employee.DayTypeOff {
		ev.Holiday = worked.IsPositive()
		switch {
		case dc.IsHoliday:
			ev.Description = fmt.Sprintf("worked %sh on holiday (%s)", worked, dc.HolidayName)
		default:
			ev.Description = fmt.Sprintf("worked %sh on off day", worked)
		}
		return ev
	}

	shortfall := dc.ExpectedHours.Sub(worked)
	switch method {
	case employee.OTMethodCalc:
		if shortfall.IsNegative() {
			ev.OTHours = shortfall.Neg().Round(2)
			ev.OT = ev.OTHours.Mul(rate).Round(2)
			ev.Description = fmt.Sprintf("%sh worked, %sh overtime", worked, ev.OTHours)
			return ev
		}
		fallthrough
	default:
		// noOt pays no overtime; both methods charge the shortfall.
		if shortfall.IsPositive() {
			noPayHours := shortfall.Round(2)
			ev.NoPay = noPayHours.Mul(rate).Round(2)
			ev.Description = fmt.Sprintf("%sh worked, %sh short of expected", worked, noPayHours)
			return ev
		}
		ev.Description = fmt.Sprintf("%sh worked", worked)
	}
	return ev
}
