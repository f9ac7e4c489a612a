package calendar

import "time"

// Holiday is one entry in a named holiday calendar.
type Holiday struct {
	Date     time.Time
	Name     string
	Type     string // "public", "bank", "mercantile"
	Calendar string // "default" or "other"
}

// HolidaySet is a date-keyed lookup for one calendar over one period.
// Keys are "YYYY-MM-DD".
type HolidaySet map[string]Holiday

// Lookup returns the holiday on the given day, if any.
func (s HolidaySet) Lookup(day time.Time) (Holiday, bool) {
	h, ok := s[day.Format("2006-01-02")]
	return h, ok
}
