// Package validate turns raw external input into sanitized, typed values.
// It is the only place where field format rules live; entity constructors
// and repository finders both go through it.
package validate

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyField      = errors.New("field is empty")
	ErrPatternMismatch = errors.New("field does not match the required pattern")
	ErrInvalidFormat   = errors.New("field has an invalid format")
	ErrOutOfRange      = errors.New("field is out of range")
)

// FieldError reports which field failed and why. The offending value is
// kept for diagnostics but is not part of Error(), since it may be a
// credential.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func fail(field, value string, err error) *FieldError {
	return &FieldError{Field: field, Value: value, Err: err}
}
