package binder

import "net/http"

// Binder extracts data from one part of a request (body, query string) into
// a Go value. Binders for different sources share this shape so handlers can
// pick one per route or chain several for endpoints that read both.
type Binder func(r *http.Request, v any) error
