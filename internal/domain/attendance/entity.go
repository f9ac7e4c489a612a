package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimestampLayout is the bit-exact CSV timestamp format. Input carries no
// timezone suffix; parsed values are normalized to UTC so persisted events
// carry a trailing Z.
const TimestampLayout = "2006-01-02T15:04:05"

// IdentifierType says what the CSV identifier column contains.
type IdentifierType string

const (
	IdentifierEmployee IdentifierType = "employee"
	IdentifierMemberNo IdentifierType = "memberno"
)

// Record is one parsed CSV row.
type Record struct {
	Identifier string
	Timestamp  time.Time
	Type       IdentifierType
	Line       int // 1-based source line, kept for diagnostics
}

// InOutEvent is one clock-in/clock-out pair with its computed hour and
// amount fields. The computed fields are filled by the hours calculator.
type InOutEvent struct {
	In           time.Time       `json:"in"`
	Out          time.Time       `json:"out"`
	WorkingHours decimal.Decimal `json:"working_hours"`
	OTHours      decimal.Decimal `json:"ot_hours"`
	OT           decimal.Decimal `json:"ot"`
	NoPay        decimal.Decimal `json:"no_pay"`
	Holiday      bool            `json:"holiday"`
	Description  string          `json:"description"`
	Remark       string          `json:"remark,omitempty"`
}

// RosterEntry is the slice of an employee the parser needs for identifier
// mapping and coverage checks.
type RosterEntry struct {
	EmployeeID string
	MemberNo   int
	Name       string
	Active     bool
}

// WarningKind classifies non-fatal parser findings. Warnings never block
// generation; they are surfaced to the caller for acknowledgment.
type WarningKind string

const (
	WarnAfterPeriod       WarningKind = "timestamp_after_period"
	WarnBeforePriorMid    WarningKind = "timestamp_before_prior_mid_month"
	WarnEmployeeMissing   WarningKind = "employee_missing_from_csv"
	WarnUnknownIdentifier WarningKind = "unknown_identifier"
	WarnUnpairedClockIn   WarningKind = "unpaired_clock_in"
)

type Warning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}
