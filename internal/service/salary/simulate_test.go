package salary

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anush47/salaryapp-backend-go/internal/domain/calendar"
	"github.com/anush47/salaryapp-backend-go/internal/domain/employee"
	"github.com/anush47/salaryapp-backend-go/internal/domain/period"
)

func simPeriod(t *testing.T) period.Period {
	p, err := period.Parse("2024-03")
	require.NoError(t, err)
	return p
}

func TestSimulateDeterministicForSeed(t *testing.T) {
	probs := employee.Probabilities{WorkOnOff: 20, WorkOnHoliday: 10, Absent: 5, Late: 30, OT: 40}

	run := func(seed int64) []string {
		rng := rand.New(rand.NewSource(seed))
		events, err := Simulate([]employee.Shift{dayShift}, weekdays, probs, nil, simPeriod(t), testRate, rng)
		require.NoError(t, err)

		out := make([]string, 0, len(events))
		for _, ev := range events {
			out = append(out, ev.In.String()+"|"+ev.Out.String()+"|"+ev.WorkingHours.String()+"|"+ev.OT.String()+"|"+ev.NoPay.String())
		}
		return out
	}

	assert.Equal(t, run(42), run(42), "same seed must reproduce the period exactly")
	assert.NotEqual(t, run(42), run(43), "different seeds should diverge")
}

func TestSimulateZeroProbabilities(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	events, err := Simulate([]employee.Shift{dayShift}, weekdays, employee.Probabilities{}, nil, simPeriod(t), testRate, rng)
	require.NoError(t, err)

	// March 2024: 21 weekdays + 5 Saturdays, Sundays skipped entirely.
	assert.Len(t, events, 26)
	for _, ev := range events {
		assert.True(t, ev.OT.IsZero())
		assert.True(t, ev.NoPay.IsZero())
		assert.False(t, ev.Holiday)
		assert.True(t, ev.WorkingHours.IsPositive())
	}
}

func TestSimulateAlwaysAbsent(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	probs := employee.Probabilities{Absent: 100}
	events, err := Simulate([]employee.Shift{dayShift}, weekdays, probs, nil, simPeriod(t), testRate, rng)
	require.NoError(t, err)

	for _, ev := range events {
		assert.True(t, ev.WorkingHours.IsZero())
		assert.True(t, ev.NoPay.IsPositive(), "absence charges the expected hours")
		assert.Equal(t, "absent", ev.Description)
	}
}

func TestSimulateHolidayRespectsCalendar(t *testing.T) {
	holidays := calendar.HolidaySet{
		"2024-03-04": {Name: "Medin Full Moon Poya Day"},
	}

	// Never works holidays: the day must produce no event.
	rng := rand.New(rand.NewSource(7))
	events, err := Simulate([]employee.Shift{dayShift}, weekdays, employee.Probabilities{}, holidays, simPeriod(t), testRate, rng)
	require.NoError(t, err)
	for _, ev := range events {
		assert.NotEqual(t, 4, ev.In.Day(), "no event expected on the holiday")
	}

	// Always works holidays: the day must be flagged.
	rng = rand.New(rand.NewSource(7))
	events, err = Simulate([]employee.Shift{dayShift}, weekdays, employee.Probabilities{WorkOnHoliday: 100}, holidays, simPeriod(t), testRate, rng)
	require.NoError(t, err)

	var found bool
	for _, ev := range events {
		if ev.In.Day() == 4 {
			found = true
			assert.True(t, ev.Holiday)
			assert.Contains(t, ev.Description, "Medin Full Moon Poya Day")
		}
	}
	assert.True(t, found)
}
