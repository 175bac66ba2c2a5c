package response

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/httpkit/core/handler"
)

// JSON renders v as application/json with 200 OK. Encoding streams straight
// into the response writer, so large payloads never sit in an intermediate
// buffer here.
func JSON(v any) handler.Response {
	return JSONWithStatus(v, http.StatusOK)
}

// JSONWithStatus renders v as application/json under the given status.
//
// A zero status picks 200 for data and 204 for nil. Statuses that forbid a
// body (204, 304) write headers only; everything else encodes v, with nil
// rendering as JSON null.
func JSONWithStatus(v any, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if status == 0 {
			if v == nil {
				status = http.StatusNoContent
			} else {
				status = http.StatusOK
			}
		}
		w.WriteHeader(status)

		if status == http.StatusNoContent || status == http.StatusNotModified {
			return nil
		}
		return json.NewEncoder(w).Encode(v)
	}
}
