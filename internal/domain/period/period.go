package period

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidPeriod = errors.New("period must be in YYYY-MM format")

// Period is one calendar month, the unit that scopes a salary/payment cycle.
type Period struct {
	Year  int
	Month time.Month
}

// Parse parses a period in "YYYY-MM" format.
func Parse(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, ErrInvalidPeriod
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

func (p Period) IsZero() bool {
	return p.Year == 0
}

// Start returns midnight UTC on the first day of the month.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last instant before the next month begins.
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// Contains reports whether t falls within the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start()) && !t.After(p.End())
}

// Days returns every calendar day of the period as midnight UTC timestamps.
func (p Period) Days() []time.Time {
	var days []time.Time
	for d := p.Start(); d.Month() == p.Month; d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Prev returns the preceding calendar month.
func (p Period) Prev() Period {
	t := p.Start().AddDate(0, -1, 0)
	return Period{Year: t.Year(), Month: t.Month()}
}
