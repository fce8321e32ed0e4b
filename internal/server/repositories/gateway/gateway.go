// Package gateway implements the persistence contract shared by every
// entity repository: insert only new entities, update and delete only
// stored ones, and look rows up by whitelisted fields with bound values.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/s-r-jones/deep-dive-air/internal/common"
)

// ErrUnknownField is returned when a lookup names a field the table does not have.
var ErrUnknownField = errors.New("unknown field")

// Entity is anything with a nullable store identity.
type Entity interface {
	ID() *int64
}

// Gateway is the storage contract for one entity kind.
type Gateway[E Entity] interface {
	// Insert stores e, which must not have an identity yet, and returns a
	// copy carrying the identity it was stored under.
	Insert(ctx context.Context, e E) (E, error)
	// Update rewrites every non-key column of a stored entity.
	Update(ctx context.Context, e E) error
	// Delete removes a stored entity.
	Delete(ctx context.Context, e E) error
	// FindBy returns all entities whose field equals value, ordered by key.
	// No match is common.ErrorNotFound.
	FindBy(ctx context.Context, field, value string) ([]E, error)
	// FindWhere is FindBy over several fields at once. With no criteria it
	// returns every row.
	FindWhere(ctx context.Context, criteria ...Criterion) ([]E, error)
}

// Criterion is a single field = value condition. Value is raw input and is
// validated with the column's rule before it is bound.
type Criterion struct {
	Field string
	Value string
}

func Eq(field, value string) Criterion {
	return Criterion{Field: field, Value: value}
}

// One asserts that a lookup matched exactly one entity.
func One[E any](items []E, err error) (E, error) {
	var zero E
	if err != nil {
		return zero, err
	}
	switch len(items) {
	case 0:
		return zero, common.ErrorNotFound
	case 1:
		return items[0], nil
	}
	return zero, fmt.Errorf("%w: %d rows", common.ErrAmbiguous, len(items))
}

// NonNewIdentityError reports inserting an entity that already has an identity.
func NonNewIdentityError(table string) error {
	return fmt.Errorf("%s: %w: non new identity detected", table, common.ErrIdentityConflict)
}

// NewIdentityError reports updating or deleting an entity without identity.
func NewIdentityError(table string) error {
	return fmt.Errorf("%s: %w: new identity detected", table, common.ErrIdentityConflict)
}

// BackendError wraps a failure of the underlying store. It matches both
// common.ErrBackend and the driver error.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("db error: %s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() []error {
	return []error{common.ErrBackend, e.Err}
}

func backend(op string, err error) error {
	if isUniqueViolation(err) {
		return &BackendError{Op: op, Err: fmt.Errorf("%w: %v", common.ErrDuplicate, err)}
	}
	return &BackendError{Op: op, Err: err}
}
