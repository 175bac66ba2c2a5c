package router

import (
	"net/http"

	"github.com/dmitrymomot/httpkit/core/handler"
)

// Router dispatches HTTP requests to typed handlers. The type parameter
// fixes the context every handler and middleware on this router receives,
// so a route written for the wrong context type fails to compile instead of
// failing at runtime.
type Router[C handler.Context] interface {
	http.Handler
	Routes

	Get(pattern string, h handler.HandlerFunc[C])
	Post(pattern string, h handler.HandlerFunc[C])
	Put(pattern string, h handler.HandlerFunc[C])
	Delete(pattern string, h handler.HandlerFunc[C])
	Patch(pattern string, h handler.HandlerFunc[C])
	Head(pattern string, h handler.HandlerFunc[C])
	Options(pattern string, h handler.HandlerFunc[C])
	Connect(pattern string, h handler.HandlerFunc[C])
	Trace(pattern string, h handler.HandlerFunc[C])

	// Handle registers for all methods, Method for a named subset.
	Handle(pattern string, h handler.HandlerFunc[C])
	Method(pattern string, h handler.HandlerFunc[C], methods ...string)

	// Use adds router-wide middleware; With scopes middleware to the
	// routes registered through the returned view.
	Use(middlewares ...handler.Middleware[C])
	With(middlewares ...handler.Middleware[C]) Router[C]

	// Group batches registrations on an inline view; Route and Mount
	// attach sub-routers under a path prefix.
	Group(fn func(r Router[C])) Router[C]
	Route(pattern string, fn func(r Router[C])) Router[C]
	Mount(pattern string, sub Router[C])
}

// Routes exposes the registered route table, mostly for startup logging
// and tests.
type Routes interface {
	Routes() []Route
}

// Route is one entry in the route table.
type Route struct {
	Method  string
	Pattern string
}

// New builds a Router. Pass WithContextFactory when C is anything other
// than *Context.
func New[C handler.Context](opts ...Option[C]) Router[C] {
	return newMux[C](opts...)
}
