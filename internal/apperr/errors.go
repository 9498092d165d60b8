// Package apperr defines the error taxonomy shared across service layers.
package apperr

import "errors"

// ErrNotFound signals that the requested record id does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError marks input the caller can correct. Its message is safe to
// return to the client verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Validation wraps a reason into a *ValidationError.
func Validation(reason string) error {
	return &ValidationError{Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
