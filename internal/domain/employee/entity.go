package employee

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OTMethod controls how overtime and no-pay are derived for an employee.
type OTMethod string

const (
	// OTMethodNone pays no overtime; hours come from the plain clock delta.
	OTMethodNone OTMethod = "noOt"
	// OTMethodRandom simulates attendance from the employee's probabilities.
	// Used by companies without attendance hardware.
	OTMethodRandom OTMethod = "random"
	// OTMethodCalc compares actual in/out against the expected shift window.
	OTMethodCalc OTMethod = "calc"
)

func (m OTMethod) IsValid() bool {
	switch m {
	case OTMethodNone, OTMethodRandom, OTMethodCalc:
		return true
	}
	return false
}

// DayType categorizes a weekday in the working-days map.
type DayType string

const (
	DayTypeFull DayType = "full"
	DayTypeHalf DayType = "half"
	DayTypeOff  DayType = "off"
)

// Shift is one expected work window. Start and End are wall-clock "HH:MM"
// strings; Break is in hours. A shift whose end is before its start spans
// midnight into the next day.
type Shift struct {
	Start string          `json:"start"`
	End   string          `json:"end"`
	Break decimal.Decimal `json:"break"`
}

// parseClock parses "HH:MM" into minutes since midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// StartMinutes returns the shift start as minutes since midnight.
func (s Shift) StartMinutes() (int, error) {
	return parseClock(s.Start)
}

// Window anchors the shift on the given calendar day and returns the
// absolute start and end instants, handling overnight shifts.
func (s Shift) Window(day time.Time) (start, end time.Time, err error) {
	startMins, err := parseClock(s.Start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endMins, err := parseClock(s.End)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	start = midnight.Add(time.Duration(startMins) * time.Minute)
	end = midnight.Add(time.Duration(endMins) * time.Minute)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, nil
}

// SpanHours returns the shift length in hours, excluding the break.
func (s Shift) SpanHours() (decimal.Decimal, error) {
	start, end, err := s.Window(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		return decimal.Zero, err
	}
	span := decimal.NewFromFloat(end.Sub(start).Hours()).Sub(s.Break)
	if span.IsNegative() {
		return decimal.Zero, nil
	}
	return span, nil
}

// WorkingDays maps each weekday to its expected attendance category.
type WorkingDays struct {
	Monday    DayType `json:"mon"`
	Tuesday   DayType `json:"tue"`
	Wednesday DayType `json:"wed"`
	Thursday  DayType `json:"thu"`
	Friday    DayType `json:"fri"`
	Saturday  DayType `json:"sat"`
	Sunday    DayType `json:"sun"`
}

func (w WorkingDays) Category(d time.Weekday) DayType {
	switch d {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	default:
		return w.Sunday
	}
}

// Probabilities are the simulation weights for OTMethodRandom, in percent.
type Probabilities struct {
	WorkOnOff     int `json:"work_on_off"`
	WorkOnHoliday int `json:"work_on_holiday"`
	Absent        int `json:"absent"`
	Late          int `json:"late"`
	OT            int `json:"ot"`
}

// Overrides marks which parts of the configuration are employee-specific
// rather than inherited from the company defaults.
type Overrides struct {
	Shifts           bool `json:"shifts"`
	WorkingDays      bool `json:"working_days"`
	PaymentStructure bool `json:"payment_structure"`
	Probabilities    bool `json:"probabilities"`
	Calendar         bool `json:"calendar"`
}

type Employee struct {
	ID            string
	CompanyID     string
	MemberNo      int
	NIC           string
	Name          string
	Basic         decimal.Decimal
	DivideBy      int // monthly-hours divisor for the hourly rate, 240 or 200
	OTMethod      OTMethod
	Shifts        []Shift
	WorkingDays   WorkingDays
	Probabilities Probabilities
	Structure     PaymentStructure
	Overrides     Overrides
	Calendar      string // holiday calendar name, "default" or "other"
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HourlyRate derives the hourly rate from monthly basic pay.
func (e Employee) HourlyRate() decimal.Decimal {
	if e.DivideBy == 0 {
		return decimal.Zero
	}
	return e.Basic.Div(decimal.NewFromInt(int64(e.DivideBy)))
}

// CompanyDefaults is the subset of company configuration an employee can
// inherit. Defined here so config resolution stays in one place.
type CompanyDefaults struct {
	Shifts        []Shift
	WorkingDays   WorkingDays
	Probabilities Probabilities
	Structure     PaymentStructure
	Calendar      string
}

func (e Employee) EffectiveShifts(c CompanyDefaults) []Shift {
	if e.Overrides.Shifts && len(e.Shifts) > 0 {
		return e.Shifts
	}
	return c.Shifts
}

func (e Employee) EffectiveWorkingDays(c CompanyDefaults) WorkingDays {
	if e.Overrides.WorkingDays {
		return e.WorkingDays
	}
	return c.WorkingDays
}

func (e Employee) EffectiveProbabilities(c CompanyDefaults) Probabilities {
	if e.Overrides.Probabilities {
		return e.Probabilities
	}
	return c.Probabilities
}

func (e Employee) EffectiveStructure(c CompanyDefaults) PaymentStructure {
	if e.Overrides.PaymentStructure {
		return e.Structure
	}
	return c.Structure
}

func (e Employee) EffectiveCalendar(c CompanyDefaults) string {
	if e.Overrides.Calendar && e.Calendar != "" {
		return e.Calendar
	}
	if c.Calendar != "" {
		return c.Calendar
	}
	return "default"
}
