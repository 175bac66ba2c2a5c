package health

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/httpkit/core/handler"
	"github.com/dmitrymomot/httpkit/core/logger"
	"github.com/dmitrymomot/httpkit/core/response"
)

// Readiness runs the dependency checks in order and answers "READY"
// when they all pass. The first failure is logged and turns into a 503
// so load balancers stop routing traffic here until the dependency
// recovers.
//
//	r.Get("/health/ready", health.Readiness[*app.Context](
//		log,
//		redisdb.Healthcheck(client),
//	))
func Readiness[C handler.Context](log *slog.Logger, fn ...func(context.Context) error) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		for _, f := range fn {
			if err := f(ctx); err != nil {
				log.ErrorContext(ctx, "Readiness check failed", logger.Error(err))
				return response.Error(response.ErrServiceUnavailable)
			}
		}

		return response.String("READY")
	}
}
