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

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// AHV number validation: new-format Swiss social security number,
// e.g. "756.1234.5678.97". The 756 prefix is the ISO country code.
var ahvNumberRegex = regexp.MustCompile(`^756\.\d{4}\.\d{4}\.\d{2}$`)

func IsValidAhvNumber(ahv string) bool {
	return ahvNumberRegex.MatchString(ahv)
}

// Gender validation: "m" or "f", as used for the NBU rate selection.
func IsValidGender(gender string) bool {
	return gender == "m" || gender == "f"
}

// Decimal-string validation: sign-less integer or value with at most two
// decimal places. Amount fields cross the API as strings; this is the cheap
// syntactic gate before money.ParseAmount does the exact parse.
var decimalRegex = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

func IsValidAmount(s string) bool {
	return decimalRegex.MatchString(s)
}

// Rate strings may carry more decimal places than amounts (e.g. "0.125").
var rateRegex = regexp.MustCompile(`^\d+(\.\d+)?$`)

func IsValidRate(s string) bool {
	return rateRegex.MatchString(s)
}

// Item type codes: 1-10 chars, digits or uppercase letters ("01", "13", "BVG").
var itemTypeCodeRegex = regexp.MustCompile(`^[0-9A-Z]{1,10}$`)

func IsValidItemTypeCode(code string) bool {
	return itemTypeCodeRegex.MatchString(code)
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

// IsValidYear bounds payroll years to a sane window. The lower bound matches
// the oldest data the system migrates; the upper bound allows entering
// next-January payments in December.
func IsValidYear(year int) bool {
	return year >= 2000 && year <= time.Now().Year()+1
}

func IsValidMonth(month int) bool {
	return month >= 1 && month <= 12
}
