package salary

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anush47/salaryapp-backend-go/internal/domain/calendar"
	"github.com/anush47/salaryapp-backend-go/internal/domain/employee"
)

var (
	dayShift   = employee.Shift{Start: "08:00", End: "17:00", Break: decimal.NewFromInt(1)}
	nightShift = employee.Shift{Start: "22:00", End: "06:00", Break: decimal.NewFromInt(1)}

	weekdays = employee.WorkingDays{
		Monday: employee.DayTypeFull, Tuesday: employee.DayTypeFull,
		Wednesday: employee.DayTypeFull, Thursday: employee.DayTypeFull,
		Friday: employee.DayTypeFull,
		Saturday: employee.DayTypeHalf, Sunday: employee.DayTypeOff,
	}
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestResolveDayFullDay(t *testing.T) {
	// 2024-03-04 is a Monday.
	dc, err := ResolveDay([]employee.Shift{dayShift}, weekdays, nil, day(t, "2024-03-04"), nil)
	require.NoError(t, err)

	assert.Equal(t, employee.DayTypeFull, dc.Category)
	assert.False(t, dc.IsHoliday)
	assert.Equal(t, 8, dc.ExpectedStart.Hour())
	assert.Equal(t, 17, dc.ExpectedEnd.Hour())
	assert.True(t, dc.BreakHours.Equal(decimal.NewFromInt(1)))
	assert.True(t, dc.ExpectedHours.Equal(decimal.NewFromInt(8)), "9h span minus 1h break, got %s", dc.ExpectedHours)
}

func TestResolveDayHalfDay(t *testing.T) {
	// Saturday: half the gross span, no break charged.
	dc, err := ResolveDay([]employee.Shift{dayShift}, weekdays, nil, day(t, "2024-03-09"), nil)
	require.NoError(t, err)

	assert.Equal(t, employee.DayTypeHalf, dc.Category)
	assert.True(t, dc.BreakHours.IsZero())
	assert.True(t, dc.ExpectedHours.Equal(decimal.RequireFromString("4.5")), "got %s", dc.ExpectedHours)
}

func TestResolveDayOffDay(t *testing.T) {
	dc, err := ResolveDay([]employee.Shift{dayShift}, weekdays, nil, day(t, "2024-03-10"), nil)
	require.NoError(t, err)

	assert.Equal(t, employee.DayTypeOff, dc.Category)
	assert.True(t, dc.ExpectedHours.IsZero())
}

func TestResolveDayHoliday(t *testing.T) {
	holidays := calendar.HolidaySet{
		"2024-03-04": {Date: day(t, "2024-03-04"), Name: "Medin Full Moon Poya Day", Type: "public"},
	}

	dc, err := ResolveDay([]employee.Shift{dayShift}, weekdays, holidays, day(t, "2024-03-04"), nil)
	require.NoError(t, err)

	assert.True(t, dc.IsHoliday)
	assert.Equal(t, "Medin Full Moon Poya Day", dc.HolidayName)
	assert.True(t, dc.ExpectedHours.IsZero(), "a holiday owes no hours even on a full day")
}

func TestResolveDayOvernightShift(t *testing.T) {
	dc, err := ResolveDay([]employee.Shift{nightShift}, weekdays, nil, day(t, "2024-03-04"), nil)
	require.NoError(t, err)

	assert.True(t, dc.ExpectedEnd.After(dc.ExpectedStart))
	assert.Equal(t, day(t, "2024-03-05").Day(), dc.ExpectedEnd.Day())
	assert.True(t, dc.ExpectedHours.Equal(decimal.NewFromInt(7)), "8h span minus 1h break, got %s", dc.ExpectedHours)
}

func TestSelectShiftNearestStart(t *testing.T) {
	shifts := []employee.Shift{dayShift, nightShift}

	morning := time.Date(2024, 3, 4, 7, 42, 0, 0, time.UTC)
	dc, err := ResolveDay(shifts, weekdays, nil, day(t, "2024-03-04"), &morning)
	require.NoError(t, err)
	assert.Equal(t, 8, dc.ExpectedStart.Hour())

	// 23:50 sits nearer the 22:00 start on the clock circle.
	late := time.Date(2024, 3, 4, 23, 50, 0, 0, time.UTC)
	dc, err = ResolveDay(shifts, weekdays, nil, day(t, "2024-03-04"), &late)
	require.NoError(t, err)
	assert.Equal(t, 22, dc.ExpectedStart.Hour())

	// No clock data falls back to the first configured shift.
	dc, err = ResolveDay(shifts, weekdays, nil, day(t, "2024-03-04"), nil)
	require.NoError(t, err)
	assert.Equal(t, 8, dc.ExpectedStart.Hour())
}

func TestResolveDayNoShifts(t *testing.T) {
	_, err := ResolveDay(nil, weekdays, nil, day(t, "2024-03-04"), nil)
	assert.ErrorIs(t, err, ErrNoShiftConfigured)
}
