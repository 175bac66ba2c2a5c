package response

import "net/http"

// HTTPError is the error shape the JSON error handlers render: a status for
// the wire, a stable machine-readable code, a human message, and optional
// details. The status travels out of band, never in the body.
//
// HTTPError is a value type. The With* methods return modified copies, so
// the package-level catalog entries stay pristine no matter how callers
// decorate them per request.
type HTTPError struct {
	Status  int            `json:"-"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// NewHTTPError builds a 500 internal_server_error with a custom message.
func NewHTTPError(message string) HTTPError {
	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_server_error",
		Message: message,
	}
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Message
}

// StatusCode reports the HTTP status, satisfying the router's statusCode
// interface so the default error handler can render HTTPErrors untranslated.
func (e HTTPError) StatusCode() int {
	return e.Status
}

// WithMessage returns a copy with the message replaced.
func (e HTTPError) WithMessage(message string) HTTPError {
	e.Message = message
	return e
}

// WithDetails returns a copy with the details replaced.
func (e HTTPError) WithDetails(details map[string]any) HTTPError {
	e.Details = details
	return e
}

// WithError returns a copy with the cause recorded under details.cause.
func (e HTTPError) WithError(err error) HTTPError {
	if e.Details == nil {
		e.Details = map[string]any{"cause": err.Error()}
	} else {
		e.Details["cause"] = err.Error()
	}
	return e
}
