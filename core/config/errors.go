package config

import "errors"

var (
	// ErrNilConfig is returned when Load receives a nil pointer.
	ErrNilConfig = errors.New("config: nil config pointer")

	// ErrParseFailed is returned when environment parsing fails. The original
	// parser error is joined for inspection.
	ErrParseFailed = errors.New("config: failed to parse environment")
)
