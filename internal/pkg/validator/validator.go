package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Period validation, "YYYY-MM"
func IsValidPeriod(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01", s)
	return t, err == nil
}

// Date validation, "YYYY-MM-DD"
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// Attendance timestamp validation, "YYYY-MM-DDTHH:mm:ss" without a zone
// suffix. Values are taken as UTC.
func IsValidTimestamp(s string) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.UTC)
	return t, err == nil
}

// NIC validation (Sri Lankan national identity card): either the old
// 9-digit form with a V/X suffix or the new 12-digit form.
var (
	oldNICRegex = regexp.MustCompile(`^[0-9]{9}[VvXx]$`)
	newNICRegex = regexp.MustCompile(`^[0-9]{12}$`)
)

func IsValidNIC(nic string) bool {
	return oldNICRegex.MatchString(nic) || newNICRegex.MatchString(nic)
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
