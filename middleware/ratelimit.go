package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/httpkit/core/handler"
	"github.com/dmitrymomot/httpkit/core/response"
	"github.com/dmitrymomot/httpkit/pkg/ratelimiter"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// Skip exempts matching requests from rate limiting.
	Skip func(ctx handler.Context) bool
	// Limiter enforces the actual limit. Required.
	Limiter ratelimiter.RateLimiter
	// KeyExtractor derives the counter key. Defaults to the client IP,
	// so each caller gets an independent budget.
	KeyExtractor func(ctx handler.Context) string
	// ErrorHandler renders the rejection. Defaults to 429 with a
	// retry_after detail.
	ErrorHandler func(ctx handler.Context, result ratelimiter.Result) handler.Response
	// SetHeaders adds X-RateLimit-* headers to every response passing
	// through, allowed or not.
	SetHeaders bool
}

// RateLimit counts requests per key in the limiter's fixed window and
// rejects with 429 once the budget is spent. Panics at construction
// when no limiter is configured.
//
//	limiter, err := ratelimiter.New(ratelimiter.NewRedisStore(redisClient), ratelimiter.Config{
//		Limit:  10,
//		Window: time.Minute,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	r.Use(middleware.RateLimit[*AppContext](middleware.RateLimitConfig{
//		Limiter:    limiter,
//		SetHeaders: true,
//	}))
//
// Tiered endpoints use one middleware per group, and a prefixed key
// keeps the same client's counters independent across tiers:
//
//	strict := middleware.RateLimitConfig{
//		Limiter: strictLimiter,
//		KeyExtractor: func(ctx handler.Context) string {
//			ip, _ := middleware.GetClientIP(ctx)
//			return "strict:" + ip
//		},
//	}
func RateLimit[C handler.Context](cfg RateLimitConfig) handler.Middleware[C] {
	if cfg.Limiter == nil {
		panic("ratelimit middleware: limiter is required")
	}

	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = keyByClientIP
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = rateLimitExceeded
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			key := cfg.KeyExtractor(ctx)
			result, err := cfg.Limiter.Allow(ctx.Request().Context(), key)
			if err != nil {
				return response.Error(response.ErrInternalServerError.WithError(err))
			}

			if !result.Allowed() {
				resp := cfg.ErrorHandler(ctx, result)
				if cfg.SetHeaders {
					return withRateLimitHeaders(resp, result)
				}
				return resp
			}

			resp := next(ctx)

			if cfg.SetHeaders {
				return withRateLimitHeaders(resp, result)
			}

			return resp
		}
	}
}

// keyByClientIP buckets by resolved client IP, falling back to the raw
// RemoteAddr when the client IP middleware did not run.
func keyByClientIP(ctx handler.Context) string {
	if ip, ok := GetClientIP(ctx); ok {
		return ip
	}
	return ctx.Request().RemoteAddr
}

// rateLimitExceeded is the default rejection: 429 plus how many seconds
// until the window rolls over.
func rateLimitExceeded(ctx handler.Context, result ratelimiter.Result) handler.Response {
	err := response.ErrTooManyRequests
	if retryAfter := result.RetryAfter(); retryAfter > 0 {
		err = err.WithDetails(map[string]any{
			"retry_after": fmt.Sprintf("%.0f", retryAfter.Seconds()),
		})
	}
	return response.Error(err)
}

// withRateLimitHeaders decorates the response with the de facto
// standard limit headers: X-RateLimit-Limit, X-RateLimit-Remaining
// (clamped at zero), X-RateLimit-Reset as a Unix timestamp, and
// Retry-After (whole seconds, minimum 1) on rejections.
func withRateLimitHeaders(resp handler.Response, result ratelimiter.Result) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, result.Remaining)))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if !result.Allowed() && result.RetryAfter() > 0 {
			retryAfter := int(result.RetryAfter().Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		}

		return resp(w, r)
	}
}
