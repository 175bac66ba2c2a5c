package main

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrymomot/httpkit/core/binder"
	"github.com/dmitrymomot/httpkit/core/sanitizer"
	"github.com/dmitrymomot/httpkit/core/session"
	"github.com/dmitrymomot/httpkit/core/validator"
	"github.com/dmitrymomot/httpkit/middleware"
	"github.com/dmitrymomot/httpkit/pkg/feature"
	"github.com/dmitrymomot/httpkit/pkg/useragent"
)

// SessionData holds demo-specific session state: UI preferences, a visit
// counter, and one-shot flash messages.
type SessionData struct {
	Theme    string            `json:"theme,omitempty"`
	Language string            `json:"language,omitempty"`
	Views    int               `json:"views,omitempty"`
	Flash    map[string]string `json:"flash,omitempty"`
}

// Context is the demo's typed request context. It delegates to the request's
// context and exposes typed accessors for values produced by the middleware
// chain. Each accessor reports whether the producing middleware ran for the
// current route.
type Context struct {
	w      http.ResponseWriter
	r      *http.Request
	params map[string]string
}

// context.Context is satisfied by delegating to the request's context.

func (c *Context) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }
func (c *Context) Done() <-chan struct{}       { return c.r.Context().Done() }
func (c *Context) Err() error                  { return c.r.Context().Err() }
func (c *Context) Value(key any) any           { return c.r.Context().Value(key) }

// SetValue stores a value in the request's context, retrievable through
// Value for the rest of the request.
func (c *Context) SetValue(key, val any) {
	ctx := context.WithValue(c.r.Context(), key, val)
	c.r = c.r.WithContext(ctx)
}

// Request returns the HTTP request associated with this context.
func (c *Context) Request() *http.Request {
	return c.r
}

// ResponseWriter returns the HTTP response writer associated with this context.
func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.w
}

// Param returns the URL parameter captured under key, or "" when the
// matched route has no such segment.
func (c *Context) Param(key string) string {
	if c.params == nil {
		return ""
	}
	return c.params[key]
}

// User returns the authenticated user attached by the auth middleware.
func (c *Context) User() (middleware.User, bool) {
	return middleware.GetUser(c)
}

// Device returns the parsed client device attached by the device detection middleware.
func (c *Context) Device() (useragent.UserAgent, bool) {
	return middleware.GetDevice(c)
}

// Flag returns the feature flag resolved by the feature flag middleware.
func (c *Context) Flag() (feature.Flag, bool) {
	return middleware.GetFeatureFlag(c)
}

// Session retrieves the current session from the request context.
// Returns the session and a boolean indicating whether it was found.
func (c *Context) Session() (session.Session[SessionData], bool) {
	return middleware.GetSession[SessionData](c)
}

// RequestID returns the request correlation ID, or an empty string when the
// request ID middleware did not run.
func (c *Context) RequestID() string {
	id, _ := middleware.GetRequestID(c)
	return id
}

// ClientIP returns the real client IP resolved by the client IP middleware,
// or an empty string when it did not run.
func (c *Context) ClientIP() string {
	ip, _ := middleware.GetClientIP(c)
	return ip
}

// Bind binds, sanitizes, and validates request data into the provided struct.
// Query parameters are used for GET/DELETE requests, the JSON body otherwise.
//
// After binding, it:
// 1. Sanitizes the struct using `sanitize` struct tags (e.g., `sanitize:"trim,lower"`)
// 2. Validates the struct using `validate` struct tags (e.g., `validate:"required;min:2"`)
//
// Returns validation errors in a structured format compatible with response.Error.
func (c *Context) Bind(v any) error {
	if c.r.Method == http.MethodGet || c.r.Method == http.MethodDelete {
		if err := binder.Query()(c.r, v); err != nil {
			return err
		}
	} else {
		if err := binder.JSON()(c.r, v); err != nil {
			return err
		}
	}

	if err := sanitizer.SanitizeStruct(v); err != nil {
		return err
	}

	return validator.ValidateStruct(v)
}

// newContext creates the context factory used by the router.
func newContext() func(http.ResponseWriter, *http.Request, map[string]string) *Context {
	return func(w http.ResponseWriter, r *http.Request, params map[string]string) *Context {
		return &Context{
			w:      w,
			r:      r,
			params: params,
		}
	}
}
