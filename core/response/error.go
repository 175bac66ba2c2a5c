package response

import (
	"net/http"

	"github.com/dmitrymomot/httpkit/core/handler"
)

// Error returns a Response that writes nothing and surfaces err instead.
// Handlers use it to hand a failure to the router's error handler while
// keeping the plain `return response.Error(...)` shape.
func Error(err error) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return err
	}
}
