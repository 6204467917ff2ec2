package apperrors

import "errors"

// Error kinds. Every error shown to the console user wraps exactly one of these.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("conflict")
	ErrConnectivity = errors.New("database unreachable")
)

// CustomError carries a user-facing message together with its kind and,
// optionally, a more specific cause that callers can match with errors.Is.
type CustomError struct {
	Kind    error
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Kind != nil {
		return e.Kind.Error()
	}
	return "unknown error"
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *CustomError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewValidationError reports an empty field or a malformed value.
func NewValidationError(message string, cause error) error {
	return &CustomError{Kind: ErrValidation, Err: cause, Message: message}
}

// NewNotFoundError reports a missing row or foreign-key target.
func NewNotFoundError(message string, cause error) error {
	return &CustomError{Kind: ErrNotFound, Err: cause, Message: message}
}

// NewConflictError reports a uniqueness violation such as a taken username.
func NewConflictError(message string, cause error) error {
	return &CustomError{Kind: ErrConflict, Err: cause, Message: message}
}

// NewConnectivityError reports that the backing store cannot be reached.
func NewConnectivityError(message string, cause error) error {
	return &CustomError{Kind: ErrConnectivity, Err: cause, Message: message}
}

// UserMessage returns the message meant for the console user and whether err
// belongs to the taxonomy at all. Anything else is a transient failure.
func UserMessage(err error) (string, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Error(), true
	}
	return "", false
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
