// Package models holds the validated booking entities. Values are only
// obtainable through constructors that sanitize and validate every field,
// so a Credential, Profile, Flight or Ticket in hand is always valid.
package models

import "github.com/s-r-jones/deep-dive-air/internal/validate"

// BuildError wraps the first field failure hit while constructing an entity.
type BuildError struct {
	Entity string
	Err    error
}

func (e *BuildError) Error() string {
	return "unable to build " + e.Entity + ": " + e.Err.Error()
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

func buildError(entity string, err error) error {
	return &BuildError{Entity: entity, Err: err}
}

// optionalID validates a nullable identity and returns a private copy.
func optionalID(field string, id *int64) (*int64, error) {
	if id == nil {
		return nil, nil
	}
	v, err := validate.Identity(field, *id)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
