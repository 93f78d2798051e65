package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals that no document matches the requested identifier.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest signals a malformed request rejected before querying.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnknownFacet signals a facet name outside the facet schema.
	ErrUnknownFacet = fmt.Errorf("%w: unknown facet", ErrInvalidRequest)
	// ErrUnsupportedMode signals a search mode outside the closed set.
	ErrUnsupportedMode = fmt.Errorf("%w: unsupported search mode", ErrInvalidRequest)
	// ErrBackendUnavailable signals a search backend transport failure.
	ErrBackendUnavailable = errors.New("search backend unavailable")
)

// BackendError wraps an adapter failure so callers can match ErrBackendUnavailable
// while keeping the original cause.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrBackendUnavailable.Error(), e.Op, e.Err)
}

func (e *BackendError) Unwrap() []error { return []error{ErrBackendUnavailable, e.Err} }

// NewBackendError wraps err as a backend failure of operation op.
func NewBackendError(op string, err error) error {
	return &BackendError{Op: op, Err: err}
}

// InvalidRequestf builds an ErrInvalidRequest with a formatted reason.
func InvalidRequestf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}
