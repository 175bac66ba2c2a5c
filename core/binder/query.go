package binder

import "net/http"

// Query returns a binder that maps URL query parameters onto struct fields.
//
// Parameter names come from the `query` tag, falling back to the lowercased
// field name; `query:"-"` skips a field. Repeated parameters and single
// comma-separated values both fill slices, and pointer fields stay nil when
// the parameter is absent, which distinguishes "not sent" from a zero value.
//
//	type UsersQuery struct {
//		Role string   `query:"role"`
//		Tags []string `query:"tags"` // ?tags=a&tags=b or ?tags=a,b
//		Page *int     `query:"page"` // nil when missing
//	}
func Query() Binder {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrFailedToParseQuery)
	}
}
