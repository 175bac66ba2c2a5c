package cookie

import (
	"errors"
	"fmt"
)

var (
	// Configuration errors from New.
	ErrNoSecret       = errors.New("no secret provided for cookie manager")
	ErrSecretTooShort = errors.New("secret must be at least 32 characters long")

	// Read-path errors. ErrInvalidSignature and ErrDecryptionFailed mean
	// tampering or a rotated-out key; ErrInvalidFormat means the value
	// never came from this package.
	ErrInvalidSignature = errors.New("cookie signature verification failed")
	ErrDecryptionFailed = errors.New("failed to decrypt cookie value")
	ErrCookieNotFound   = errors.New("cookie not found in request")
	ErrInvalidFormat    = errors.New("invalid cookie format")

	// ErrConsentRequired reports a write of a non-essential cookie
	// without recorded user consent.
	ErrConsentRequired = errors.New("user consent required for non-essential cookies")
)

// ErrCookieTooLarge reports a serialized cookie over the size limit,
// carrying the numbers so callers can log what to trim.
type ErrCookieTooLarge struct {
	Name string
	Size int
	Max  int
}

func (e ErrCookieTooLarge) Error() string {
	return fmt.Sprintf("cookie %q size %d exceeds maximum %d bytes", e.Name, e.Size, e.Max)
}
