package attendance

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCSV = errors.New("attendance CSV is empty")

	// ErrAttendanceDataMissing marks an employee whose OT method requires
	// clock data but has none for the period. It fails that employee's
	// generation only, never the whole batch.
	ErrAttendanceDataMissing = errors.New("attendance data missing for employee")
)

// ParseError is a fatal CSV format error with its 1-based line number.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}
