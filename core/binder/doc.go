// Package binder maps HTTP request data onto Go structs.
//
// Two sources are covered: JSON bodies and URL query parameters. Both
// binders share the Binder signature, so a handler picks whichever matches
// the route, typically JSON for writes and Query for list filters:
//
//	var q UsersQuery
//	if err := binder.Query()(r, &q); err != nil { ... }
//
//	var req IngestRequest
//	if err := binder.JSON()(r, &req); err != nil { ... }
//
// # Strictness
//
// The JSON binder validates the Content-Type, rejects unknown fields and
// trailing data, and refuses bodies over DefaultMaxJSONSize. Bound strings
// from either source are cleaned of NUL bytes and non-printing control
// characters, so downstream code never sees raw header-injection material.
//
// # Types
//
// Query binding converts strings to the scalar kinds (string, ints, uints,
// floats, bool), slices of those, and pointers for optional parameters.
// Bool accepts strconv forms plus on/off and yes/no. Slices fill from
// repeated parameters or from one comma-separated value.
//
// # Errors
//
// Failures wrap one of four sentinels: ErrMissingContentType,
// ErrUnsupportedMediaType, ErrFailedToParseJSON, ErrFailedToParseQuery.
// Match with errors.Is to choose a response status.
package binder
