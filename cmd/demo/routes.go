package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/httpkit/core/cookie"
	"github.com/dmitrymomot/httpkit/core/handler"
	"github.com/dmitrymomot/httpkit/core/health"
	"github.com/dmitrymomot/httpkit/core/logger"
	"github.com/dmitrymomot/httpkit/core/response"
	"github.com/dmitrymomot/httpkit/core/router"
	"github.com/dmitrymomot/httpkit/core/sessiontransport"
	"github.com/dmitrymomot/httpkit/middleware"
	"github.com/dmitrymomot/httpkit/pkg/feature"
	"github.com/dmitrymomot/httpkit/pkg/ratelimiter"
)

// deps aggregates everything the route table needs. Nothing here mutates
// after startup.
type deps struct {
	log      *slog.Logger
	tokens   middleware.StaticTokens
	flags    *feature.StaticProvider
	strict   ratelimiter.RateLimiter
	standard ratelimiter.RateLimiter
	relaxed  ratelimiter.RateLimiter
	cookies  *cookie.Manager
	sessions *sessiontransport.Cookie[SessionData]
	checks   []func(context.Context) error
	started  time.Time
	version  string
}

// errorHandler renders every failure as the flat JSON error envelope and
// correlates it with the request via the X-Request-ID header. The ID is read
// from the context, so recovered panics keep their correlation even though
// the response decorators never ran.
func errorHandler(ctx *Context, err error) {
	switch {
	case errors.Is(err, router.ErrNotFound):
		err = response.ErrNotFound
	case errors.Is(err, router.ErrMethodNotAllowed):
		err = response.ErrMethodNotAllowed
	}

	if id := ctx.RequestID(); id != "" {
		ctx.ResponseWriter().Header().Set("X-Request-ID", id)
	}
	response.JSONErrorHandler(ctx, err)
}

func buildRouter(d deps) router.Router[*Context] {
	r := router.New[*Context](
		router.WithContextFactory[*Context](newContext()),
		router.WithErrorHandler[*Context](errorHandler),
		router.WithLogger[*Context](d.log),
		router.WithMiddleware(
			middleware.RequestID[*Context](),
			middleware.ClientIP[*Context](),
			middleware.LoggingWithLogger[*Context](d.log.With(logger.Component("http.request"))),
			middleware.Transform[*Context](),
			middleware.CORS[*Context](),
			middleware.SecurityHeaders[*Context](),
		),
	)

	// Tier limiters share one store but use distinct key prefixes, so the
	// same client has an independent counter per tier.
	strictTier := middleware.RateLimit[*Context](middleware.RateLimitConfig{
		Limiter:      d.strict,
		KeyExtractor: tierKey("strict"),
		SetHeaders:   true,
	})
	standardTier := middleware.RateLimit[*Context](middleware.RateLimitConfig{
		Limiter:      d.standard,
		KeyExtractor: tierKey("standard"),
		SetHeaders:   true,
	})
	relaxedTier := middleware.RateLimit[*Context](middleware.RateLimitConfig{
		Limiter:      d.relaxed,
		KeyExtractor: tierKey("relaxed"),
		SetHeaders:   true,
	})

	auth := middleware.Auth[*Context](d.tokens)

	// Health check endpoints
	r.Get("/health/live", health.Liveness[*Context])
	r.Get("/health/ready", health.Readiness[*Context](d.log, d.checks...))

	// Public demos
	r.Group(func(demo router.Router[*Context]) {
		demo.Get("/demo/public", publicHandler())
		demo.Get("/demo/headers", headersHandler())
		demo.With(middleware.DeviceDetect[*Context]()).Get("/demo/device", deviceHandler())

		demo.Get("/demo/cookies/set", setCookieHandler(d.cookies))
		demo.Get("/demo/cookies/get", getCookieHandler(d.cookies))
		demo.Get("/demo/cookies/clear", clearCookieHandler(d.cookies))
		demo.Get("/demo/cookies/consent", consentHandler(d.cookies))

		demo.With(middleware.BodyLimitWithSize[*Context](64 << 10)).Post("/demo/echo", echoHandler())
	})

	// Session demos
	r.Group(func(sess router.Router[*Context]) {
		sess.Use(middleware.SessionWithConfig[*Context, SessionData](middleware.SessionConfig[*Context, SessionData]{
			Transport: d.sessions,
			Logger:    d.log,
		}))
		sess.Get("/demo/session/set", setSessionHandler())
		sess.Get("/demo/session/get", getSessionHandler())
		sess.Get("/demo/session/flash/set", setFlashHandler())
		sess.Get("/demo/session/flash/get", getFlashHandler())
		sess.Get("/demo/session/regenerate", regenerateSessionHandler())
	})

	// One gate route per flag; unknown flags fall through to 404. Optional
	// auth lets the gate see the user for flags that require one while the
	// routes stay reachable anonymously.
	for _, flag := range demoFlags() {
		r.With(auth.Optional(), middleware.FeatureFlag[*Context](d.flags, flag.Name)).
			Get("/demo/features/"+flag.Name, featureHandler())
	}

	// Premium routes: authenticated, rate limited per tier
	r.Group(func(premium router.Router[*Context]) {
		premium.Use(auth.Middleware())

		premium.Get("/premium/profile", profileHandler())
		premium.With(strictTier).Get("/premium/limited", tierHandler("strict"))
		premium.With(relaxedTier).Get("/premium/relaxed", tierHandler("relaxed"))
		premium.With(middleware.RequireRole(auth, "admin")).Get("/premium/admin", adminHandler())
	})

	// API routes
	r.With(standardTier).Get("/api/v1/status", statusHandler(d.started, d.version))

	r.Group(func(api router.Router[*Context]) {
		api.Use(auth.Middleware(), standardTier)

		api.With(middleware.RequireRole(auth, "admin")).Get("/api/v1/users", listUsersHandler(d.tokens))
		api.Get("/api/v1/users/{id}", getUserHandler(d.tokens))
	})

	r.With(auth.Middleware(), strictTier, middleware.BodyLimitWithSize[*Context](1<<20)).
		Post("/api/v1/data", ingestHandler())

	// Preflight targets: routes browsers call with credentials or JSON
	// bodies. The CORS middleware answers preflights before the handler,
	// so this only serves plain OPTIONS probes.
	for _, path := range []string{
		"/demo/echo",
		"/premium/profile",
		"/premium/limited",
		"/premium/relaxed",
		"/premium/admin",
		"/api/v1/users",
		"/api/v1/users/{id}",
		"/api/v1/data",
	} {
		r.Options(path, preflightHandler())
	}

	return r
}

func preflightHandler() handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		return response.NoContent()
	}
}

// tierKey namespaces rate limit counters by tier.
func tierKey(tier string) func(handler.Context) string {
	return func(ctx handler.Context) string {
		if ip, ok := middleware.GetClientIP(ctx); ok {
			return tier + ":" + ip
		}
		return tier + ":" + ctx.Request().RemoteAddr
	}
}
