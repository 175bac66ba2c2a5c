package handler

import "net/http"

// Response renders the outcome of a handler: headers first, then status,
// then body. A non-nil error from the render step goes to the router's
// error handler rather than leaking to the client half-written.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc processes one request through a typed context and returns
// the Response to render. Returning nil is a programming error that the
// router reports as an internal server error.
type HandlerFunc[C Context] func(ctx C) Response

// Middleware decorates a handler: it may run work before or after next,
// rewrite the returned Response, or short-circuit without calling next
// at all.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]

// ErrorHandler turns errors surfaced by handlers, middlewares, or the
// router itself into client-facing responses.
type ErrorHandler[C Context] func(ctx C, err error)
