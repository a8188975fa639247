// Package service implements the trip checklist engine: lazy provisioning of
// the default personal and group checklists, checklist and item CRUD, and
// atomic-by-validation reordering of a checklist's items.
//
// The engine holds no in-memory state between calls; all consistency under
// concurrent callers comes from the store's uniqueness constraints and from
// read-validate-then-write sequencing. Errors carry a Kind that transport
// layers map to their own status codes.
package service

import (
	"errors"
	"fmt"

	"github.com/ankadev/tripnest/internal/storage"
)

// Kind classifies a service failure for the transport layer.
type Kind int

const (
	// KindInvalidArgument covers blank required text, unknown enum values,
	// malformed reorder input, and no-op update requests.
	KindInvalidArgument Kind = iota + 1
	// KindNotFound covers operations targeting a trip, checklist, or item
	// that does not exist.
	KindNotFound
	// KindConflict covers explicit creation attempts that violated a
	// uniqueness constraint.
	KindConflict
	// KindInternal covers any other store failure, propagated unchanged.
	KindInternal
)

// Error wraps a failure with its Kind. The underlying error keeps full
// context for logging; the Kind alone drives caller behavior.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the Kind from err, defaulting to KindInternal for errors
// that did not originate in this package.
func KindOf(err error) Kind {
	var serr *Error
	if errors.As(err, &serr) {
		return serr.Kind
	}
	return KindInternal
}

func invalidArgf(format string, args ...any) error {
	return &Error{Kind: KindInvalidArgument, Err: fmt.Errorf(format, args...)}
}

func notFoundf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Err: fmt.Errorf(format, args...)}
}

// storeErr translates storage sentinels into the service taxonomy. Errors
// the store does not classify stay opaque as KindInternal.
func storeErr(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return &Error{Kind: KindNotFound, Err: err}
	case errors.Is(err, storage.ErrConflict):
		return &Error{Kind: KindConflict, Err: err}
	default:
		return &Error{Kind: KindInternal, Err: err}
	}
}
