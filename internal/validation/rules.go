package validation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/Domenick1991/airops/internal/apperrors"
)

// Validation rule patterns
var (
	// DatePattern checks the shape of a YYYY-MM-DD date with month 01-12 and
	// day 01-31. It does not check the calendar: 2024-02-30 passes.
	DatePattern = `^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12]\d|3[01])$`

	// IntegerPattern matches a non-negative integer key such as a FlightInstanceID.
	IntegerPattern = `^\d+$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Date    *regexp.Regexp
	Integer *regexp.Regexp
}{
	Date:    regexp.MustCompile(DatePattern),
	Integer: regexp.MustCompile(IntegerPattern),
}

var (
	ErrEmptyField = errors.New("empty field")
	ErrBadFormat  = errors.New("bad format")
)

// DateFormatMessage is printed for every rejected date field.
const DateFormatMessage = "Invalid date format. Please use YYYY-MM-DD."

// IsBlank reports whether s is empty after trimming whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Required fails with message when value is blank.
func Required(value, message string) error {
	if IsBlank(value) {
		return apperrors.NewValidationError(message, ErrEmptyField)
	}
	return nil
}

// Date fails when value is not a YYYY-MM-DD date.
func Date(value string) error {
	if !CompiledPatterns.Date.MatchString(value) {
		return apperrors.NewValidationError(DateFormatMessage, ErrBadFormat)
	}
	return nil
}

// Integer fails with message when value is not a plain non-negative integer.
func Integer(value, message string) error {
	if !CompiledPatterns.Integer.MatchString(strings.TrimSpace(value)) {
		return apperrors.NewValidationError(message, ErrBadFormat)
	}
	return nil
}

// NormalizeID trims and upper-cases an identifier such as a flight number.
func NormalizeID(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
