package salary

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anush47/salaryapp-backend-go/internal/domain/attendance"
	"github.com/anush47/salaryapp-backend-go/internal/domain/calendar"
	"github.com/anush47/salaryapp-backend-go/internal/domain/employee"
	"github.com/anush47/salaryapp-backend-go/internal/domain/period"
)

// Simulate produces a full period of synthetic in/out events for an
// employee on the random OT method, using the configured probabilities as
// simulation weights. No clock data is consulted; companies without
// attendance hardware run on this. The rand source is injected so a fixed
// seed reproduces the same period exactly.
func Simulate(shifts []employee.Shift, days employee.WorkingDays, probs employee.Probabilities, holidays calendar.HolidaySet, p period.Period, rate decimal.Decimal, rng *rand.Rand) ([]attendance.InOutEvent, error) {
	var events []attendance.InOutEvent
	for _, day := range p.Days() {
		dc, err := ResolveDay(shifts, days, holidays, day, nil)
		if err != nil {
			return nil, err
		}

		switch {
		case dc.IsHoliday:
			if roll(rng, probs.WorkOnHoliday) {
				events = append(events, workedEvent(dc, fmt.Sprintf("worked on holiday (%s)", dc.HolidayName), true))
			}
		case dc.Category == employee.DayTypeOff:
			if roll(rng, probs.WorkOnOff) {
				events = append(events, workedEvent(dc, "worked on off day", true))
			}
		default:
			events = append(events, simulateWorkingDay(dc, probs, rate, rng))
		}
	}
	return events, nil
}

func roll(rng *rand.Rand, pct int) bool {
	return pct > 0 && rng.Intn(100) < pct
}

func simulateWorkingDay(dc DayContext, probs employee.Probabilities, rate decimal.Decimal, rng *rand.Rand) attendance.InOutEvent {
	if roll(rng, probs.Absent) {
		return attendance.InOutEvent{
			In:           dc.ExpectedStart,
			Out:          dc.ExpectedEnd,
			WorkingHours: decimal.Zero,
			NoPay:        dc.ExpectedHours.Mul(rate).Round(2),
			Description:  "absent",
		}
	}

	ev := workedEvent(dc, "", false)
	if roll(rng, probs.Late) {
		lateMins := 15 + rng.Intn(46) // 15-60 minutes
		lateHours := decimal.NewFromInt(int64(lateMins)).Div(decimal.NewFromInt(60)).Round(2)
		ev.In = ev.In.Add(time.Duration(lateMins) * time.Minute)
		ev.WorkingHours = ev.WorkingHours.Sub(lateHours)
		ev.NoPay = lateHours.Mul(rate).Round(2)
		ev.Description = fmt.Sprintf("late by %d minutes", lateMins)
	}
	if roll(rng, probs.OT) {
		otHours := decimal.NewFromInt(int64(1 + rng.Intn(3))) // 1-3 hours
		ev.Out = ev.Out.Add(time.Duration(otHours.IntPart()) * time.Hour)
		ev.OTHours = otHours
		ev.OT = otHours.Mul(rate).Round(2)
		if ev.Description == "" {
			ev.Description = fmt.Sprintf("%sh overtime", otHours)
		} else {
			ev.Description += fmt.Sprintf(", %sh overtime", otHours)
		}
	}
	if ev.Description == "" {
		ev.Description = fmt.Sprintf("%sh worked", ev.WorkingHours)
	}
	return ev
}

func workedEvent(dc DayContext, description string, holiday bool) attendance.InOutEvent {
	out := dc.ExpectedEnd
	hours := dc.ExpectedHours
	if holiday {
		// Off-day and holiday windows expect zero hours; the synthetic
		// attendance covers the configured shift span instead.
		start, end := dc.ExpectedStart, dc.ExpectedEnd
		if !end.After(start) {
			end = start.Add(8 * time.Hour)
		}
		out = end
		hours = hoursBetween(start, end).Round(2)
	}
	return attendance.InOutEvent{
		In:           dc.ExpectedStart,
		Out:          out,
		WorkingHours: hours,
		Holiday:      holiday,
		Description:  description,
	}
}
