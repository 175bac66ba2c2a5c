package useragent

import "errors"

var (
	// ErrEmptyUserAgent is returned when the User-Agent string is empty or whitespace.
	ErrEmptyUserAgent = errors.New("empty user agent string")
	// ErrMalformedUserAgent is returned when the User-Agent string contains no
	// parseable product tokens or includes control characters.
	ErrMalformedUserAgent = errors.New("malformed user agent string")
	// ErrUnknownDevice is returned when no device, OS, or browser could be identified.
	ErrUnknownDevice = errors.New("unknown device type")
)
