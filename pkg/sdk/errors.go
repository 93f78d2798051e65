package aristotle

import "github.com/kailas-cloud/aristotle/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound           = domain.ErrNotFound
	ErrInvalidRequest     = domain.ErrInvalidRequest
	ErrUnknownFacet       = domain.ErrUnknownFacet
	ErrUnsupportedMode    = domain.ErrUnsupportedMode
	ErrBackendUnavailable = domain.ErrBackendUnavailable
)
