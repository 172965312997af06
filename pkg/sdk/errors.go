package hotelsearch

import "github.com/kailas-cloud/hotelsearch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrSearchFailed      = domain.ErrSearchFailed
	ErrMalformedResponse = domain.ErrMalformedResponse
	ErrInvalidRequest    = domain.ErrInvalidRequest
)
