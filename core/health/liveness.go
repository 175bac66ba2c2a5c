package health

import (
	"github.com/dmitrymomot/httpkit/core/handler"
	"github.com/dmitrymomot/httpkit/core/response"
)

// Liveness answers "ALIVE" with 200 as long as the process can serve
// requests at all. It checks nothing else, so an orchestrator restarts
// the process only when it is truly wedged.
//
//	r.Get("/health/live", health.Liveness[*app.Context])
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}

// NoContent answers 204 with an empty body, the cheapest possible probe
// for high-frequency pingers.
//
//	r.Get("/ping", health.NoContent[*app.Context])
func NoContent[C handler.Context](C) handler.Response {
	return response.NoContent()
}
