package router

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/httpkit/core/handler"
)

// Option configures a router at construction time.
type Option[C handler.Context] func(*mux[C])

// WithErrorHandler replaces the default error handler. A nil handler is
// ignored so the default stays in place.
func WithErrorHandler[C handler.Context](h handler.ErrorHandler[C]) Option[C] {
	return func(m *mux[C]) {
		if h != nil {
			m.errorHandler = h
		}
	}
}

// WithMiddleware appends middleware to the router's global chain, same as
// calling Use before any route is registered.
func WithMiddleware[C handler.Context](middlewares ...handler.Middleware[C]) Option[C] {
	return func(m *mux[C]) {
		m.middlewares = append(m.middlewares, middlewares...)
	}
}

// WithContextFactory sets the function that builds the per-request context.
// Required for any context type other than the package's own *Context.
func WithContextFactory[C handler.Context](f func(http.ResponseWriter, *http.Request, map[string]string) C) Option[C] {
	return func(m *mux[C]) {
		m.newContext = f
	}
}

// WithLogger sets the logger used for panics that arrive after the response
// started. Nil is ignored; the default logger discards everything.
func WithLogger[C handler.Context](logger *slog.Logger) Option[C] {
	return func(m *mux[C]) {
		if logger != nil {
			m.logger = logger
		}
	}
}
