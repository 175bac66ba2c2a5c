package response

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/httpkit/core/handler"
)

// statuser is implemented by errors that carry their own HTTP status.
type statuser interface {
	StatusCode() int
}

// ToHTTPError coerces any error into an HTTPError. Errors that already are
// an HTTPError pass through unchanged; errors implementing StatusCode() int
// map to the predefined error for that status; everything else becomes a
// 500 with the original error recorded as the cause.
//
// Useful for custom router error handlers that enrich the error before
// rendering (e.g. attaching a request id for correlation).
func ToHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	if sc, ok := err.(statuser); ok {
		status = sc.StatusCode()
	}

	base, ok := httpErrorsByStatus[status]
	if !ok {
		base = ErrInternalServerError
	}

	return base.WithError(err)
}

// ErrorHandler renders errors as plain text with the mapped status code.
func ErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := ToHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Error(), httpErr.Status))
}

// JSONErrorHandler renders errors as JSON, preserving the structured fields
// of an HTTPError when the error carries them.
func JSONErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := ToHTTPError(err)
	Render(ctx, JSONWithStatus(httpErr, httpErr.Status))
}
