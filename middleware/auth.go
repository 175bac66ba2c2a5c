package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrymomot/httpkit/core/handler"
	"github.com/dmitrymomot/httpkit/core/response"
)

// Authentication errors returned to the configured ErrorHandler.
var (
	// ErrMissingToken indicates no bearer token was found in the request.
	ErrMissingToken = errors.New("missing authentication token")
	// ErrInvalidToken indicates the token was present but not recognized.
	ErrInvalidToken = errors.New("invalid authentication token")
)

// authUserContextKey is used as a key for storing the authenticated user in request context.
type authUserContextKey struct{}

// User is the identity resolved from a bearer token.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// TokenStore resolves bearer tokens to users. Implementations must be safe
// for concurrent use.
type TokenStore interface {
	// ResolveToken returns the user owning the token, or ErrInvalidToken
	// (possibly wrapped) when the token is unknown.
	ResolveToken(ctx context.Context, token string) (User, error)
}

// StaticTokens is an in-memory TokenStore backed by a fixed token table.
// Build it once from configuration and treat it as immutable afterwards:
//
//	tokens := middleware.StaticTokens{
//		"user-token-123": {ID: "1", Name: "John Doe", Email: "john@example.com", Role: "user"},
//		"admin-token-456": {ID: "2", Name: "Jane Admin", Email: "jane@example.com", Role: "admin"},
//	}
type StaticTokens map[string]User

// ResolveToken implements TokenStore.
func (s StaticTokens) ResolveToken(_ context.Context, token string) (User, error) {
	user, ok := s[token]
	if !ok {
		return User{}, ErrInvalidToken
	}
	return user, nil
}

// AuthConfig configures the bearer-token authentication middleware.
type AuthConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Tokens resolves bearer tokens to users (required)
	Tokens TokenStore
	// TokenExtractor defines how to extract the token from the request
	// (default: Authorization header with Bearer scheme, falling back to the "token" query parameter)
	TokenExtractor func(ctx handler.Context) string
	// ErrorHandler defines how to handle authentication failures (default: returns 401 Unauthorized with a hint)
	ErrorHandler func(ctx handler.Context, err error) handler.Response
}

// AuthMiddleware is a constructed bearer-token authenticator. It is a value
// rather than a bare function so that middleware depending on an
// authenticated user (see RequireRole) can take it as a constructor argument,
// turning the "auth must run first" convention into a registration-time
// requirement.
type AuthMiddleware[C handler.Context] struct {
	cfg AuthConfig
}

// Auth creates a bearer-token authentication middleware backed by the given
// token store.
//
// Usage:
//
//	auth := middleware.Auth[*MyContext](tokens)
//
//	protected := r.With(auth.Middleware())
//	protected.Get("/premium/profile", handleProfile)
//
//	// Use the resolved user in handlers
//	func handleProfile(ctx *MyContext) handler.Response {
//		user, ok := middleware.GetUser(ctx)
//		if !ok {
//			return response.Error(response.ErrUnauthorized)
//		}
//		return response.JSON(user)
//	}
//
// Tokens are accepted from the Authorization header ("Bearer <token>") or,
// when the header is absent, from the "token" query parameter. Requests
// without a recognizable token get 401 with a hint naming both sources.
func Auth[C handler.Context](tokens TokenStore) *AuthMiddleware[C] {
	return AuthWithConfig[C](AuthConfig{Tokens: tokens})
}

// AuthWithConfig creates a bearer-token authentication middleware with custom
// configuration. Panics if the token store is not provided.
//
// Advanced Usage Examples:
//
//	// Custom token sources (header only, no query fallback)
//	cfg := middleware.AuthConfig{
//		Tokens:         tokens,
//		TokenExtractor: middleware.TokenFromAuthHeader(),
//	}
//
//	// Accept tokens from a cookie as well
//	cfg := middleware.AuthConfig{
//		Tokens: tokens,
//		TokenExtractor: middleware.TokenFromMultiple(
//			middleware.TokenFromAuthHeader(),
//			middleware.TokenFromCookie("auth_token"),
//			middleware.TokenFromQuery("token"),
//		),
//	}
//
//	// Skip authentication for public endpoints
//	cfg := middleware.AuthConfig{
//		Tokens: tokens,
//		Skip: func(ctx handler.Context) bool {
//			return strings.HasPrefix(ctx.Request().URL.Path, "/public/")
//		},
//	}
func AuthWithConfig[C handler.Context](cfg AuthConfig) *AuthMiddleware[C] {
	if cfg.Tokens == nil {
		panic("auth middleware: token store is required")
	}

	if cfg.TokenExtractor == nil {
		cfg.TokenExtractor = TokenFromMultiple(
			TokenFromAuthHeader(),
			TokenFromQuery("token"),
		)
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(ctx handler.Context, err error) handler.Response {
			httpErr := response.ErrUnauthorized
			switch {
			case errors.Is(err, ErrMissingToken):
				httpErr = httpErr.WithDetails(map[string]any{
					"hint": "supply a token via the Authorization header (Bearer scheme) or the token query parameter",
				})
			case errors.Is(err, ErrInvalidToken):
				httpErr = httpErr.WithDetails(map[string]any{
					"hint": "the supplied token is not recognized",
				})
			}
			return response.Error(httpErr.WithError(err))
		}
	}

	return &AuthMiddleware[C]{cfg: cfg}
}

// Middleware returns the handler middleware performing the authentication.
func (a *AuthMiddleware[C]) Middleware() handler.Middleware[C] {
	cfg := a.cfg

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			token := cfg.TokenExtractor(ctx)
			if token == "" {
				return cfg.ErrorHandler(ctx, ErrMissingToken)
			}

			user, err := cfg.Tokens.ResolveToken(ctx, token)
			if err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			ctx.SetValue(authUserContextKey{}, user)

			return next(ctx)
		}
	}
}

// Optional returns a variant that resolves the user when the request carries
// a valid token but never rejects the request. Requests without a token, or
// with a token the store does not recognize, continue anonymously. Chain it
// in front of gates that adapt to identity without requiring it, such as
// feature flags with an authentication requirement.
func (a *AuthMiddleware[C]) Optional() handler.Middleware[C] {
	cfg := a.cfg

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			if token := cfg.TokenExtractor(ctx); token != "" {
				if user, err := cfg.Tokens.ResolveToken(ctx, token); err == nil {
					ctx.SetValue(authUserContextKey{}, user)
				}
			}

			return next(ctx)
		}
	}
}

// GetUser retrieves the authenticated user from the request context.
// Returns the user and a boolean indicating whether one was found.
func GetUser(ctx handler.Context) (User, bool) {
	user, ok := ctx.Value(authUserContextKey{}).(User)
	return user, ok
}

// Token Extractors
//
// The following functions provide strategies for extracting bearer tokens
// from HTTP requests. They can be used individually or combined with
// TokenFromMultiple.

// TokenFromAuthHeader returns an extractor that looks for the token in the
// Authorization header with Bearer scheme. It also accepts tokens without
// the Bearer prefix.
func TokenFromAuthHeader() func(handler.Context) string {
	return func(ctx handler.Context) string {
		auth := ctx.Request().Header.Get("Authorization")
		if auth == "" {
			return ""
		}
		const bearerPrefix = "Bearer "
		if strings.HasPrefix(auth, bearerPrefix) {
			return auth[len(bearerPrefix):]
		}
		return auth
	}
}

// TokenFromHeader returns an extractor that looks for the token in a custom header.
func TokenFromHeader(headerName string) func(handler.Context) string {
	return func(ctx handler.Context) string {
		return ctx.Request().Header.Get(headerName)
	}
}

// TokenFromQuery returns an extractor that looks for the token in a URL query parameter.
func TokenFromQuery(paramName string) func(handler.Context) string {
	return func(ctx handler.Context) string {
		return ctx.Request().URL.Query().Get(paramName)
	}
}

// TokenFromCookie returns an extractor that looks for the token in an HTTP cookie.
func TokenFromCookie(cookieName string) func(handler.Context) string {
	return func(ctx handler.Context) string {
		cookie, err := ctx.Request().Cookie(cookieName)
		if err != nil {
			return ""
		}
		return cookie.Value
	}
}

// TokenFromMultiple returns an extractor that tries multiple extractors in
// order and returns the first non-empty token found.
func TokenFromMultiple(extractors ...func(handler.Context) string) func(handler.Context) string {
	return func(ctx handler.Context) string {
		for _, extractor := range extractors {
			if token := extractor(ctx); token != "" {
				return token
			}
		}
		return ""
	}
}
