package middleware

import (
	"net/http"

	"github.com/dmitrymomot/httpkit/core/handler"
	"github.com/dmitrymomot/httpkit/core/response"
	"github.com/dmitrymomot/httpkit/pkg/clientip"
)

type clientIPContextKey struct{}

// ClientIPConfig configures client IP extraction.
type ClientIPConfig struct {
	// Skip bypasses the middleware for matching requests.
	Skip func(ctx handler.Context) bool

	// StoreInContext makes the IP available through GetClientIP.
	StoreInContext bool

	// HeaderName is the response header used when StoreInHeader is on,
	// "X-Client-IP" by default.
	HeaderName string

	// StoreInHeader echoes the IP on the response.
	StoreInHeader bool

	// ValidateFunc can reject requests by IP; errors turn into 403
	// responses.
	ValidateFunc func(ctx handler.Context, ip string) error
}

// ClientIP resolves the real client address, seeing through proxy headers
// like X-Forwarded-For, and stores it in the request context.
func ClientIP[C handler.Context]() handler.Middleware[C] {
	return ClientIPWithConfig[C](ClientIPConfig{
		StoreInContext: true,
	})
}

// ClientIPWithConfig is ClientIP with control over where the address goes
// and an optional validation hook. A config that asks for nothing falls
// back to storing in context, since running the middleware for no effect
// is never intended.
func ClientIPWithConfig[C handler.Context](cfg ClientIPConfig) handler.Middleware[C] {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Client-IP"
	}

	if !cfg.StoreInContext && !cfg.StoreInHeader && cfg.ValidateFunc == nil {
		cfg.StoreInContext = true
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			ip := clientip.GetIP(ctx.Request())

			if cfg.StoreInContext {
				ctx.SetValue(clientIPContextKey{}, ip)
			}

			if cfg.ValidateFunc != nil {
				if err := cfg.ValidateFunc(ctx, ip); err != nil {
					return response.Error(response.ErrForbidden.WithError(err))
				}
			}

			resp := next(ctx)

			if cfg.StoreInHeader {
				return func(w http.ResponseWriter, r *http.Request) error {
					w.Header().Set(cfg.HeaderName, ip)
					return resp(w, r)
				}
			}

			return resp
		}
	}
}

// GetClientIP returns the address resolved for this request, if the
// middleware ran.
func GetClientIP(ctx handler.Context) (string, bool) {
	ip, ok := ctx.Value(clientIPContextKey{}).(string)
	return ip, ok
}
