package salary

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anush47/salaryapp-backend-go/internal/domain/calendar"
	"github.com/anush47/salaryapp-backend-go/internal/domain/employee"
)

var ErrNoShiftConfigured = errors.New("no shift configured for employee")

// DayContext is the resolved expectation for one employee on one calendar
// date: the shift window, break, holiday status and working-day category.
// Resolution is a pure function of (employee config, date) so the hours
// calculator can call it independently per event.
type DayContext struct {
	Date          time.Time
	Category      employee.DayType
	IsHoliday     bool
	HolidayName   string
	ExpectedStart time.Time
	ExpectedEnd   time.Time
	BreakHours    decimal.Decimal
	ExpectedHours decimal.Decimal
}

// ResolveDay resolves the expected work window for a date. When the
// employee has multiple shifts the one whose start lies nearest the first
// clock-in of the day is selected; without clock data the first configured
// shift applies. The break is charged against full days only: a half day
// expects half the gross span, an off day expects nothing.
func ResolveDay(shifts []employee.Shift, days employee.WorkingDays, holidays calendar.HolidaySet, date time.Time, firstIn *time.Time) (DayContext, error) {
	if len(shifts) == 0 {
		return DayContext{}, ErrNoShiftConfigured
	}

	shift, err := selectShift(shifts, firstIn)
	if err != nil {
		return DayContext{}, err
	}

	start, end, err := shift.Window(date)
	if err != nil {
		return DayContext{}, err
	}

	dc := DayContext{
		Date:     date,
		Category: days.Category(date.Weekday()),
	}
	if h, ok := holidays.Lookup(date); ok {
		dc.IsHoliday = true
		dc.HolidayName = h.Name
	}

	grossSpan := end.Sub(start)
	switch dc.Category {
	case employee.DayTypeHalf:
		dc.ExpectedStart = start
		dc.ExpectedEnd = start.Add(grossSpan / 2)
		dc.BreakHours = decimal.Zero
		dc.ExpectedHours = hoursBetween(dc.ExpectedStart, dc.ExpectedEnd)
	case employee.DayTypeOff:
		dc.ExpectedStart = start
		dc.ExpectedEnd = start
		dc.BreakHours = decimal.Zero
		dc.ExpectedHours = decimal.Zero
	default:
		dc.ExpectedStart = start
		dc.ExpectedEnd = end
		dc.BreakHours = shift.Break
		dc.ExpectedHours = hoursBetween(start, end).Sub(shift.Break)
		if dc.ExpectedHours.IsNegative() {
			dc.ExpectedHours = decimal.Zero
		}
	}

	// A holiday overrides the weekday expectation: nothing is owed.
	if dc.IsHoliday {
		dc.ExpectedHours = decimal.Zero
	}
	return dc, nil
}

// selectShift picks among multiple shifts by nearest start time to the
// actual clock-in. This is the documented resolution rule for split shifts.
func selectShift(shifts []employee.Shift, firstIn *time.Time) (employee.Shift, error) {
	if len(shifts) == 1 || firstIn == nil {
		return shifts[0], nil
	}

	inMins := firstIn.Hour()*60 + firstIn.Minute()
	best := shifts[0]
	bestDist := -1
	for _, s := range shifts {
		startMins, err := s.StartMinutes()
		if err != nil {
			return employee.Shift{}, err
		}
		dist := clockDistance(inMins, startMins)
		if bestDist < 0 || dist < bestDist {
			best, bestDist = s, dist
		}
	}
	return best, nil
}

// clockDistance is the minute distance between two wall-clock times on a
// 24h circle, so a 23:50 clock-in sits near a 00:10 shift start.
func clockDistance(a, b int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	if wrapped := 24*60 - d; wrapped < d {
		return wrapped
	}
	return d
}

func hoursBetween(from, to time.Time) decimal.Decimal {
	return decimal.NewFromFloat(to.Sub(from).Hours()).Round(4)
}
