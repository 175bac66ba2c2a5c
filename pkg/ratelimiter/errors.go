package ratelimiter

import "errors"

var (
	// ErrInvalidConfig wraps construction failures such as a nil store or
	// non-positive limit or window. New annotates it with the offending value.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrStoreUnavailable is joined with the underlying storage error when a
	// counter increment fails. Callers decide whether to fail open or closed.
	ErrStoreUnavailable = errors.New("store unavailable")
)
