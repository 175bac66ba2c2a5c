package binder

import "errors"

// Sentinel errors wrap every binding failure so callers can map them to
// HTTP responses with errors.Is without inspecting message text.
var (
	// ErrMissingContentType: body binders refuse requests that do not
	// declare a Content-Type at all.
	ErrMissingContentType = errors.New("missing content type")

	// ErrUnsupportedMediaType: the declared Content-Type is not one the
	// binder handles, e.g. text/plain sent to the JSON binder.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrFailedToParseJSON: malformed JSON, unknown fields, trailing
	// data, or a body that does not fit the target struct.
	ErrFailedToParseJSON = errors.New("failed to parse JSON request body")

	// ErrFailedToParseQuery: a query parameter could not be converted to
	// the target field's type.
	ErrFailedToParseQuery = errors.New("failed to parse query parameters")
)
