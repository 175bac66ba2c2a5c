package handler

import (
	"context"
	"net/http"
)

// Context is the request-scoped view a handler receives. It carries the raw
// request and writer, exposes matched path parameters, and doubles as a
// context.Context so deadlines and cancellation flow through untouched.
// Routers provide the implementation; applications embed it to add typed
// accessors for whatever their middleware stack produces.
type Context interface {
	context.Context

	// Request returns the inbound HTTP request.
	Request() *http.Request

	// ResponseWriter returns the writer the response renders to.
	ResponseWriter() http.ResponseWriter

	// Param returns the named path segment, or "" when the route
	// declares no such parameter.
	Param(key string) string

	// SetValue attaches a request-scoped value readable through Value.
	// Middlewares use it to hand results down the chain without
	// re-wrapping the request context.
	SetValue(key, val any)
}
