package attendance

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/anush47/salaryapp-backend-go/internal/domain/period"
)

// ParseCSV parses raw attendance text for one company period. The first
// line must begin with "employee," (values are employee ids) or "memberno,"
// (values are member numbers), case-insensitive; every following line is
// "identifier,timestamp". Any malformed line fails the whole parse with its
// 1-based line number. Findings that do not invalidate the data (stray
// timestamps, coverage gaps, unknown identifiers) come back as warnings.
func ParseCSV(raw string, roster []RosterEntry, p period.Period) ([]Record, []Warning, error) {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, nil, ErrEmptyCSV
	}

	header := strings.ToLower(strings.TrimSpace(lines[0]))
	var idType IdentifierType
	switch {
	case strings.HasPrefix(header, "employee,"), header == "employee":
		idType = IdentifierEmployee
	case strings.HasPrefix(header, "memberno,"), header == "memberno":
		idType = IdentifierMemberNo
	default:
		return nil, nil, &ParseError{Line: 1, Reason: `header must begin with "employee," or "memberno,"`}
	}

	priorMid := time.Date(p.Prev().Year, p.Prev().Month, 15, 0, 0, 0, 0, time.UTC)

	var records []Record
	var warnings []Warning
	for i, line := range lines[1:] {
		lineNo := i + 2
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) < 2 {
			return nil, nil, &ParseError{Line: lineNo, Reason: "expected identifier,timestamp"}
		}

		identifier := strings.TrimSpace(fields[0])
		if identifier == "" {
			return nil, nil, &ParseError{Line: lineNo, Reason: "identifier is empty"}
		}
		if idType == IdentifierMemberNo {
			if _, err := strconv.Atoi(identifier); err != nil {
				return nil, nil, &ParseError{Line: lineNo, Reason: fmt.Sprintf("member number %q is not numeric", identifier)}
			}
		}

		ts, err := time.ParseInLocation(TimestampLayout, strings.TrimSpace(fields[1]), time.UTC)
		if err != nil {
			return nil, nil, &ParseError{Line: lineNo, Reason: fmt.Sprintf("timestamp %q does not match %s", strings.TrimSpace(fields[1]), TimestampLayout)}
		}

		if ts.After(p.End()) {
			warnings = append(warnings, Warning{
				Kind:    WarnAfterPeriod,
				Message: fmt.Sprintf("line %d: timestamp %s is after the end of %s", lineNo, ts.Format(time.RFC3339), p),
			})
		}
		if ts.Before(priorMid) {
			warnings = append(warnings, Warning{
				Kind:    WarnBeforePriorMid,
				Message: fmt.Sprintf("line %d: timestamp %s is before the 15th of the prior month", lineNo, ts.Format(time.RFC3339)),
			})
		}

		records = append(records, Record{Identifier: identifier, Timestamp: ts, Type: idType, Line: lineNo})
	}

	warnings = append(warnings, coverageWarnings(records, roster, idType)...)
	return records, warnings, nil
}

// coverageWarnings reports active employees absent from the CSV and CSV
// identifiers that map to no active employee.
func coverageWarnings(records []Record, roster []RosterEntry, idType IdentifierType) []Warning {
	known := make(map[string]RosterEntry, len(roster))
	for _, r := range roster {
		if !r.Active {
			continue
		}
		known[rosterKey(r, idType)] = r
	}

	seen := make(map[string]bool)
	unknown := make(map[string]bool)
	var warnings []Warning
	for _, rec := range records {
		if _, ok := known[rec.Identifier]; ok {
			seen[rec.Identifier] = true
		} else if !unknown[rec.Identifier] {
			unknown[rec.Identifier] = true
			warnings = append(warnings, Warning{
				Kind:    WarnUnknownIdentifier,
				Message: fmt.Sprintf("identifier %q does not map to any active employee", rec.Identifier),
			})
		}
	}

	for key, r := range known {
		if !seen[key] {
			warnings = append(warnings, Warning{
				Kind:    WarnEmployeeMissing,
				Message: fmt.Sprintf("active employee %s (%s) has no rows in the CSV", r.Name, r.EmployeeID),
			})
		}
	}
	sort.Slice(warnings, func(i, j int) bool { return warnings[i].Message < warnings[j].Message })
	return warnings
}

func rosterKey(r RosterEntry, idType IdentifierType) string {
	if idType == IdentifierMemberNo {
		return strconv.Itoa(r.MemberNo)
	}
	return r.EmployeeID
}

// NewInOutEvent validates one raw pair. Clock-out must be strictly after
// clock-in; a pair with out == in is a duplicate punch and is rejected.
func NewInOutEvent(in, out time.Time) (InOutEvent, error) {
	if !out.After(in) {
		return InOutEvent{}, fmt.Errorf("clock-out %s must be after clock-in %s", out.Format(TimestampLayout), in.Format(TimestampLayout))
	}
	return InOutEvent{In: in.UTC(), Out: out.UTC()}, nil
}

// PairEvents groups records per employee and pairs consecutive timestamps
// into in/out events. A trailing unpaired clock-in is skipped with a
// warning. The returned map is keyed by employee id.
func PairEvents(records []Record, roster []RosterEntry) (map[string][]InOutEvent, []Warning, error) {
	byEmployee := make(map[string][]time.Time)
	if len(records) == 0 {
		return map[string][]InOutEvent{}, nil, nil
	}

	lookup := make(map[string]RosterEntry, len(roster))
	for _, r := range roster {
		if r.Active {
			lookup[rosterKey(r, records[0].Type)] = r
		}
	}

	for _, rec := range records {
		entry, ok := lookup[rec.Identifier]
		if !ok {
			// Already warned during parsing.
			continue
		}
		byEmployee[entry.EmployeeID] = append(byEmployee[entry.EmployeeID], rec.Timestamp)
	}

	events := make(map[string][]InOutEvent, len(byEmployee))
	var warnings []Warning
	for employeeID, stamps := range byEmployee {
		sort.Slice(stamps, func(i, j int) bool { return stamps[i].Before(stamps[j]) })

		for i := 0; i+1 < len(stamps); i += 2 {
			ev, err := NewInOutEvent(stamps[i], stamps[i+1])
			if err != nil {
				return nil, nil, fmt.Errorf("employee %s: %w", employeeID, err)
			}
			events[employeeID] = append(events[employeeID], ev)
		}
		if len(stamps)%2 == 1 {
			warnings = append(warnings, Warning{
				Kind:    WarnUnpairedClockIn,
				Message: fmt.Sprintf("employee %s has an unpaired clock-in at %s", employeeID, stamps[len(stamps)-1].Format(TimestampLayout)),
			})
		}
	}
	return events, warnings, nil
}
