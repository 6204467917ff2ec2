package validation

import "strings"

type FieldKind int

const (
	// FieldText is trimmed and bound as is.
	FieldText FieldKind = iota
	// FieldID is trimmed and upper-cased.
	FieldID
	// FieldDate must be YYYY-MM-DD.
	FieldDate
	// FieldContains is bound as a case-insensitive substring pattern.
	FieldContains
	// FieldInteger must be a plain non-negative integer.
	FieldInteger
)

// IntegerFormatMessage is printed for a rejected FieldInteger value.
const IntegerFormatMessage = "Invalid number. Please enter a whole number."

// Field is one prompted console input.
type Field struct {
	Prompt       string
	EmptyMessage string
	Kind         FieldKind
}

// Arg validates a raw console value and converts it to the bind argument.
func (f Field) Arg(raw string) (string, error) {
	if err := Required(raw, f.EmptyMessage); err != nil {
		return "", err
	}
	v := strings.TrimSpace(raw)
	switch f.Kind {
	case FieldID:
		return NormalizeID(v), nil
	case FieldDate:
		if err := Date(v); err != nil {
			return "", err
		}
		return v, nil
	case FieldInteger:
		if err := Integer(v, IntegerFormatMessage); err != nil {
			return "", err
		}
		return v, nil
	case FieldContains:
		return "%" + likeEscaper.Replace(v) + "%", nil
	default:
		return v, nil
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
