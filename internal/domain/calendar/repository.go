package calendar

import (
	"context"

	"github.com/anush47/salaryapp-backend-go/internal/domain/period"
)

// CalendarRepository resolves named holiday calendars. Holiday data is
// externally maintained; the engine only reads it.
type CalendarRepository interface {
	// GetHolidays returns the holidays of the named calendar that fall
	// within the period, keyed by date.
	GetHolidays(ctx context.Context, name string, p period.Period) (HolidaySet, error)
}
