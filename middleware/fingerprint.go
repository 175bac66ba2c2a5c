package middleware

import (
	"net/http"

	"github.com/dmitrymomot/httpkit/core/handler"
	"github.com/dmitrymomot/httpkit/core/response"
	"github.com/dmitrymomot/httpkit/pkg/fingerprint"
)

type fingerprintContextKey struct{}

// FingerprintConfig configures device fingerprinting.
type FingerprintConfig struct {
	// Skip bypasses the middleware for matching requests.
	Skip func(ctx handler.Context) bool

	// HeaderName is the response header used when StoreInHeader is on,
	// "X-Device-Fingerprint" by default.
	HeaderName string

	// StoreInContext makes the fingerprint available via GetFingerprint.
	StoreInContext bool

	// StoreInHeader echoes the fingerprint on the response.
	StoreInHeader bool

	// ValidateFunc can reject requests by fingerprint; errors turn into
	// 400 responses.
	ValidateFunc func(ctx handler.Context, fingerprint string) error

	// Options tune what goes into the hash, e.g. fingerprint.WithIP().
	Options []fingerprint.Option
}

// Fingerprint derives a stable device identifier from request
// characteristics and stores it in the request context. Useful for
// spotting session hijacking and correlating anonymous traffic.
func Fingerprint[C handler.Context]() handler.Middleware[C] {
	return FingerprintWithConfig[C](FingerprintConfig{
		StoreInContext: true,
	})
}

// FingerprintWithConfig is Fingerprint with control over hash inputs,
// where the value goes, and an optional validation hook. A config that
// asks for nothing falls back to storing in context.
func FingerprintWithConfig[C handler.Context](cfg FingerprintConfig) handler.Middleware[C] {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Device-Fingerprint"
	}

	if !cfg.StoreInContext && !cfg.StoreInHeader && cfg.ValidateFunc == nil {
		cfg.StoreInContext = true
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			fp := fingerprint.Generate(ctx.Request(), cfg.Options...)

			if cfg.StoreInContext {
				ctx.SetValue(fingerprintContextKey{}, fp)
			}

			if cfg.ValidateFunc != nil {
				if err := cfg.ValidateFunc(ctx, fp); err != nil {
					return response.JSONWithStatus(response.ErrBadRequest.WithError(err), response.ErrBadRequest.Status)
				}
			}

			resp := next(ctx)

			if cfg.StoreInHeader {
				return func(w http.ResponseWriter, r *http.Request) error {
					w.Header().Set(cfg.HeaderName, fp)
					return resp(w, r)
				}
			}

			return resp
		}
	}
}

// GetFingerprint returns the fingerprint computed for this request, if the
// middleware ran.
func GetFingerprint(ctx handler.Context) (string, bool) {
	fp, ok := ctx.Value(fingerprintContextKey{}).(string)
	return fp, ok
}
