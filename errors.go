package typegrow

import "errors"

// Standard sentinel errors for the runtime surface.
var (
	// ErrCacheMiss is returned when a fingerprint has no cache entry.
	ErrCacheMiss = errors.New("typegrow: cache miss")
)

// IsCacheMiss reports whether the error indicates a missing cache entry.
func IsCacheMiss(err error) bool {
	return errors.Is(err, ErrCacheMiss)
}
