package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/httpkit/core/handler"
)

var (
	// Dispatch errors, delivered to the error handler at request time.
	ErrNoContextFactory = errors.New("no context factory provided")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrNotFound         = errors.New("not found")
	ErrNilResponse      = errors.New("nil response")

	// Registration errors, raised as panics while routes are being set up.
	ErrInvalidMethod    = errors.New("invalid http method")
	ErrNilRouter        = errors.New("nil router")
	ErrNilSubrouter     = errors.New("nil subrouter")
	ErrInvalidPattern   = errors.New("invalid route path pattern")
	ErrInvalidRegexp    = errors.New("invalid route path pattern regexp")
	ErrMissingChild     = errors.New("missing child router")
	ErrWildcardPosition = errors.New("wildcard position must be last")
	ErrParamDelimiter   = errors.New("param delimiter must be unique")
	ErrDuplicateParam   = errors.New("duplicate parameter name")
)

// statusCode lets error values carry their own HTTP status, picked up by
// the default error handler without importing the response package.
type statusCode interface {
	StatusCode() int
}

// defaultErrorHandler is the fallback used when no WithErrorHandler option
// is given. Plain text responses only; applications wanting structured
// error bodies install their own handler.
func defaultErrorHandler[C handler.Context](ctx C, err error) {
	w := ctx.ResponseWriter()

	// A partially sent response cannot be replaced with an error page.
	if ww, ok := w.(*responseWriter); ok && ww.Written() {
		return
	}

	if sc, ok := err.(statusCode); ok {
		http.Error(w, err.Error(), sc.StatusCode())
		return
	}

	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "404 Not Found", http.StatusNotFound)
	case errors.Is(err, ErrMethodNotAllowed):
		http.Error(w, "405 Method Not Allowed", http.StatusMethodNotAllowed)
	case errors.Is(err, ErrNilResponse):
		http.Error(w, "500 Internal Server Error - nil response", http.StatusInternalServerError)
	default:
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
	}
}

// PanicError is implemented by the error a recovered panic is delivered
// as. Error handlers can type-assert to it to log the original value and
// the stack captured at the panic site.
type PanicError interface {
	error
	// Value returns the recovered panic value.
	Value() any
	// Stack returns the goroutine stack captured during recovery.
	Stack() []byte
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any {
	return e.value
}

func (e *panicError) Stack() []byte {
	return e.stack
}

// Unwrap exposes the panic value to errors.Is and errors.As when the code
// panicked with an error.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
