package middleware

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/httpkit/core/handler"
	"github.com/dmitrymomot/httpkit/core/response"
	"github.com/dmitrymomot/httpkit/pkg/feature"
	"github.com/dmitrymomot/httpkit/pkg/fingerprint"
)

// featureFlagContextKey is used as a key for storing the resolved flag in request context.
type featureFlagContextKey struct{}

// FeatureFlagConfig configures the feature flag gate middleware.
type FeatureFlagConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Provider resolves feature flags (required)
	Provider feature.Provider
	// Flag is the name of the flag this gate enforces (required)
	Flag string
	// Bucket assigns the request to a rollout bucket in [0, 100)
	// (default: fingerprint.Bucket, a stable hash of client IP and User-Agent)
	Bucket func(r *http.Request) int
	// ErrorHandler defines how to handle gate rejections
	// (default: 404 unknown flag, 403 disabled or outside rollout, 401 auth required)
	ErrorHandler func(ctx handler.Context, err error) handler.Response
	// SetHeaders determines whether to report the gate decision in the
	// X-Feature-Flag and X-Feature-Enabled response headers
	SetHeaders bool
}

// FeatureFlag creates a feature flag gate for the named flag. Each gate
// instance guards one flag; declare one per route:
//
//	flags := feature.NewStaticProvider(
//		feature.Flag{Name: "new-dashboard", Enabled: true, Rollout: 100},
//		feature.Flag{Name: "beta-search", Enabled: true, Rollout: 50},
//	)
//
//	r.With(middleware.FeatureFlag[*MyContext](flags, "new-dashboard")).
//		Get("/features/new-dashboard", handleDashboard)
//
// Requests are admitted when the flag exists, is enabled, the client's
// deterministic rollout bucket falls inside the rollout percentage, and any
// authentication requirement is satisfied. Rejections map to 404 (unknown
// flag), 403 (disabled or outside rollout), and 401 (requires auth). Admitted
// requests carry the flag metadata in context via GetFeatureFlag and report
// the decision in X-Feature-Flag / X-Feature-Enabled headers.
//
// Flags with RequiresAuth rely on the Auth middleware having run earlier in
// the route's chain; without it every request counts as anonymous. For routes
// that must stay reachable anonymously, chain AuthMiddleware.Optional before
// the gate.
func FeatureFlag[C handler.Context](provider feature.Provider, flag string) handler.Middleware[C] {
	return FeatureFlagWithConfig[C](FeatureFlagConfig{
		Provider:   provider,
		Flag:       flag,
		SetHeaders: true,
	})
}

// FeatureFlagWithConfig creates a feature flag gate with custom configuration.
// Panics if the provider or flag name is not provided.
func FeatureFlagWithConfig[C handler.Context](cfg FeatureFlagConfig) handler.Middleware[C] {
	if cfg.Provider == nil {
		panic("featureflag middleware: provider is required")
	}
	if cfg.Flag == "" {
		panic("featureflag middleware: flag name is required")
	}

	if cfg.Bucket == nil {
		cfg.Bucket = fingerprint.Bucket
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(ctx handler.Context, err error) handler.Response {
			details := map[string]any{"feature": cfg.Flag}
			switch {
			case errors.Is(err, feature.ErrFlagNotFound):
				return response.Error(response.ErrNotFound.WithDetails(details).WithError(err))
			case errors.Is(err, feature.ErrFlagDisabled), errors.Is(err, feature.ErrNotInRollout):
				return response.Error(response.ErrForbidden.WithDetails(details).WithError(err))
			case errors.Is(err, feature.ErrAuthRequired):
				return response.Error(response.ErrUnauthorized.WithDetails(details).WithError(err))
			default:
				return response.Error(response.ErrInternalServerError.WithError(err))
			}
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			_, authenticated := GetUser(ctx)
			bucket := cfg.Bucket(ctx.Request())

			if err := cfg.Provider.IsEnabled(ctx, cfg.Flag, bucket, authenticated); err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			flag, err := cfg.Provider.GetFlag(ctx, cfg.Flag)
			if err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			ctx.SetValue(featureFlagContextKey{}, flag)

			response := next(ctx)

			if !cfg.SetHeaders {
				return response
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				w.Header().Set("X-Feature-Flag", flag.Name)
				w.Header().Set("X-Feature-Enabled", "true")
				return response(w, r)
			}
		}
	}
}

// GetFeatureFlag retrieves the flag admitted by the gate from the request
// context. Returns the flag and a boolean indicating whether it was found.
func GetFeatureFlag(ctx handler.Context) (feature.Flag, bool) {
	flag, ok := ctx.Value(featureFlagContextKey{}).(feature.Flag)
	return flag, ok
}
