// Package health supplies the probe handlers an orchestrator expects:
// Liveness (process up), Readiness (dependencies reachable), and
// NoContent (a bare 204 for cheap pings).
//
//	r.Get("/health/live", health.Liveness[*AppContext])
//	r.Get("/health/ready", health.Readiness[*AppContext](
//		log,
//		redisdb.Healthcheck(client),
//		checkUpstream,
//	))
//	r.Get("/ping", health.NoContent[*AppContext])
//
// A readiness check is any func(context.Context) error; return nil when
// the dependency is usable:
//
//	func checkUpstream(ctx context.Context) error {
//		return upstream.PingContext(ctx)
//	}
//
// Keep the two probes distinct: liveness failing restarts the process,
// readiness failing only drains traffic. Wiring dependency checks into
// liveness turns a flaky dependency into a restart loop.
package health
