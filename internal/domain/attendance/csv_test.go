package attendance

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anush47/salaryapp-backend-go/internal/domain/period"
)

func testRoster() []RosterEntry {
	return []RosterEntry{
		{EmployeeID: "emp-1", MemberNo: 101, Name: "Kamal Perera", Active: true},
		{EmployeeID: "emp-2", MemberNo: 102, Name: "Nimal Silva", Active: true},
		{EmployeeID: "emp-3", MemberNo: 103, Name: "Former Employee", Active: false},
	}
}

func mustPeriod(t *testing.T, s string) period.Period {
	t.Helper()
	p, err := period.Parse(s)
	require.NoError(t, err)
	return p
}

func TestParseCSVEmployeeHeader(t *testing.T) {
	raw := "employee,timestamp\n" +
		"emp-1,2024-03-04T08:00:00\n" +
		"emp-1,2024-03-04T17:00:00\n" +
		"emp-2,2024-03-04T08:30:00\n" +
		"emp-2,2024-03-04T16:30:00\n"

	records, warnings, err := ParseCSV(raw, testRoster(), mustPeriod(t, "2024-03"))
	require.NoError(t, err)
	assert.Len(t, records, 4)
	assert.Empty(t, warnings)
	assert.Equal(t, 2, records[0].Line)
}

func TestParseCSVMemberNoHeader(t *testing.T) {
	raw := "memberno,timestamp\n" +
		"101,2024-03-04T08:00:00\n" +
		"101,2024-03-04T17:00:00\n"

	records, _, err := ParseCSV(raw, testRoster(), mustPeriod(t, "2024-03"))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, IdentifierMemberNo, records[0].Type)

	_, _, err = ParseCSV("memberno,timestamp\nabc,2024-03-04T08:00:00\n", testRoster(), mustPeriod(t, "2024-03"))
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Line)
}

func TestParseCSVFailFast(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		line int
	}{
		{"bad header", "in,out\nemp-1,2024-03-04T08:00:00\n", 1},
		{"missing field", "employee,timestamp\nemp-1\n", 2},
		{"bad timestamp", "employee,timestamp\nemp-1,2024-03-04 08:00\n", 2},
		{"bad timestamp later line", "employee,timestamp\nemp-1,2024-03-04T08:00:00\nemp-1,notatime\n", 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := ParseCSV(c.raw, testRoster(), mustPeriod(t, "2024-03"))
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, c.line, parseErr.Line)
		})
	}

	_, _, err := ParseCSV("", testRoster(), mustPeriod(t, "2024-03"))
	assert.ErrorIs(t, err, ErrEmptyCSV)
}

func TestParseCSVTimestampWarnings(t *testing.T) {
	raw := "employee,timestamp\n" +
		"emp-1,2024-04-01T08:00:00\n" + // after the period end
		"emp-1,2024-02-10T08:00:00\n" + // before the 15th of the prior month
		"emp-2,2024-03-04T08:00:00\n" +
		"emp-2,2024-03-04T17:00:00\n"

	records, warnings, err := ParseCSV(raw, testRoster(), mustPeriod(t, "2024-03"))
	require.NoError(t, err)
	assert.Len(t, records, 4, "out-of-window rows are kept, only flagged")

	kinds := map[WarningKind]int{}
	for _, w := range warnings {
		kinds[w.Kind]++
	}
	assert.Equal(t, 1, kinds[WarnAfterPeriod])
	assert.Equal(t, 1, kinds[WarnBeforePriorMid])
}

func TestParseCSVCoverageWarnings(t *testing.T) {
	raw := "employee,timestamp\n" +
		"emp-1,2024-03-04T08:00:00\n" +
		"emp-1,2024-03-04T17:00:00\n" +
		"ghost,2024-03-04T08:00:00\n" +
		"emp-3,2024-03-04T08:00:00\n" // inactive, treated as unknown

	_, warnings, err := ParseCSV(raw, testRoster(), mustPeriod(t, "2024-03"))
	require.NoError(t, err)

	kinds := map[WarningKind]int{}
	for _, w := range warnings {
		kinds[w.Kind]++
	}
	assert.Equal(t, 2, kinds[WarnUnknownIdentifier])
	// emp-2 is active but has no rows.
	assert.Equal(t, 1, kinds[WarnEmployeeMissing])
}

func TestPairEvents(t *testing.T) {
	p := mustPeriod(t, "2024-03")
	raw := "employee,timestamp\n" +
		"emp-1,2024-03-04T17:00:00\n" + // out of order on purpose
		"emp-1,2024-03-04T08:00:00\n" +
		"emp-1,2024-03-05T08:00:00\n" +
		"emp-1,2024-03-05T17:30:00\n" +
		"emp-2,2024-03-04T08:00:00\n" // unpaired

	records, _, err := ParseCSV(raw, testRoster(), p)
	require.NoError(t, err)

	events, warnings, err := PairEvents(records, testRoster())
	require.NoError(t, err)

	require.Len(t, events["emp-1"], 2)
	first := events["emp-1"][0]
	assert.Equal(t, time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC), first.In)
	assert.Equal(t, time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC), first.Out)

	assert.Empty(t, events["emp-2"], "unpaired clock-in is skipped")
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnUnpairedClockIn, warnings[0].Kind)
}

func TestNewInOutEventRejectsDuplicatePunch(t *testing.T) {
	ts := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)

	_, err := NewInOutEvent(ts, ts)
	assert.Error(t, err, "out == in is a duplicate punch")

	_, err = NewInOutEvent(ts, ts.Add(-time.Hour))
	assert.Error(t, err)

	ev, err := NewInOutEvent(ts, ts.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, ev.Out.After(ev.In))
}

func TestParseErrorMessage(t *testing.T) {
	err := &ParseError{Line: 7, Reason: "identifier is empty"}
	assert.Equal(t, "line 7: identifier is empty", err.Error())
	assert.True(t, errors.As(error(err), new(*ParseError)))
}
