package middleware

import (
	"net/http"

	"github.com/dmitrymomot/httpkit/core/handler"
	"github.com/google/uuid"
)

type requestIDContextKey struct{}

// RequestIDConfig configures request ID assignment.
type RequestIDConfig struct {
	// Skip bypasses the middleware for matching requests.
	Skip func(ctx handler.Context) bool

	// Generator mints new IDs; defaults to random UUIDs.
	Generator func() string

	// HeaderName carries the ID on the response, "X-Request-ID" by
	// default.
	HeaderName string

	// UseExisting honours an ID already present on the incoming request,
	// which keeps traces intact behind a gateway that assigns its own.
	UseExisting bool
}

// RequestID tags every request with a fresh UUID, exposed to handlers via
// GetRequestID and echoed on the response header.
func RequestID[C handler.Context]() handler.Middleware[C] {
	return RequestIDWithConfig[C](RequestIDConfig{})
}

// RequestIDWithConfig is RequestID with a custom header name, generator,
// or pass-through of upstream IDs.
func RequestIDWithConfig[C handler.Context](cfg RequestIDConfig) handler.Middleware[C] {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Request-ID"
	}

	if cfg.Generator == nil {
		cfg.Generator = func() string {
			return uuid.New().String()
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			var requestID string

			if cfg.UseExisting {
				requestID = ctx.Request().Header.Get(cfg.HeaderName)
			}

			if requestID == "" {
				requestID = cfg.Generator()
			}

			ctx.SetValue(requestIDContextKey{}, requestID)

			response := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				w.Header().Set(cfg.HeaderName, requestID)
				return response(w, r)
			}
		}
	}
}

// GetRequestID returns the ID assigned to this request, if the middleware
// ran.
func GetRequestID(ctx handler.Context) (string, bool) {
	id, ok := ctx.Value(requestIDContextKey{}).(string)
	return id, ok
}
