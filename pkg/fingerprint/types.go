package fingerprint

import "errors"

// options selects which request characteristics feed the hash.
type options struct {
	includeIP            bool // off by default: IPs rotate on mobile and VPN
	includeUserAgent     bool
	includeAcceptHeaders bool
	includeHeaderSet     bool
}

// Option adjusts fingerprint generation. The same options must be used
// for Generate and the later Validate.
type Option func(*options)

// WithIP mixes the client IP into the fingerprint. Sessions then break
// whenever the IP changes, so reserve this for flows that can
// re-authenticate gracefully.
func WithIP() Option {
	return func(o *options) {
		o.includeIP = true
	}
}

// WithoutIP restates the default of excluding the client IP.
func WithoutIP() Option {
	return func(o *options) {
		o.includeIP = false
	}
}

// WithoutUserAgent drops the User-Agent header from the mix.
func WithoutUserAgent() Option {
	return func(o *options) {
		o.includeUserAgent = false
	}
}

// WithoutAcceptHeaders drops the Accept family, useful when content
// negotiation varies per request.
func WithoutAcceptHeaders() Option {
	return func(o *options) {
		o.includeAcceptHeaders = false
	}
}

// WithoutHeaderSet drops the header-presence component.
func WithoutHeaderSet() Option {
	return func(o *options) {
		o.includeHeaderSet = false
	}
}

func defaultOptions() *options {
	return &options{
		includeIP:            false,
		includeUserAgent:     true,
		includeAcceptHeaders: true,
		includeHeaderSet:     true,
	}
}

func applyOptions(opts ...Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

var (
	// ErrInvalidFingerprint reports a stored value not in Generate's
	// "v1:<hex>" format.
	ErrInvalidFingerprint = errors.New("invalid fingerprint format")

	// ErrMismatch reports a fingerprint that no longer matches the
	// request, anything from a hijacked session to a browser update.
	ErrMismatch = errors.New("fingerprint mismatch")
)
