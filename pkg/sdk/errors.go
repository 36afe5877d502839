package fedsearch

import (
	"errors"

	"github.com/kailas-cloud/fedsearch/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound            = domain.ErrNotFound
	ErrInvalidRequest      = domain.ErrInvalidRequest
	ErrUnrecognizedOption  = domain.ErrUnrecognizedOption
	ErrProviderUnavailable = domain.ErrProviderUnavailable
	ErrReadOnly            = errors.New("fedsearch: client has no writable store (use WithValkey or WithRedis)")
)
