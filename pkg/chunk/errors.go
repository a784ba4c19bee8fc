package chunk

import "errors"

var (
	// ErrNotFound means neither the base cookie nor any chunk cookie is present.
	ErrNotFound = errors.New("chunk.not_found")

	// ErrMalformedChunks means chunk cookies are present but do not form a
	// contiguous 0..n-1 sequence below the configured maximum.
	ErrMalformedChunks = errors.New("chunk.malformed")

	// ErrTooLarge means a blob needs more than MaxChunks cookies.
	ErrTooLarge = errors.New("chunk.too_large")

	ErrInvalidConfig = errors.New("chunk.invalid_config")
)
