package middleware

import (
	"slices"

	"github.com/dmitrymomot/httpkit/core/handler"
	"github.com/dmitrymomot/httpkit/core/response"
)

// permissionsContextKey is used as a key for storing role permissions in request context.
type permissionsContextKey struct{}

// defaultRolePermissions is the permission ladder used when a config does not
// supply its own list.
var defaultRolePermissions = map[string][]string{
	"admin":     {"read", "write", "delete"},
	"moderator": {"read", "write"},
	"user":      {"read"},
}

// RequireRoleConfig configures the role authorization middleware.
type RequireRoleConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Role is the role the authenticated user must hold (required)
	Role string
	// Permissions is the permission list attached to the context on success
	// (default: the built-in ladder for the role, empty for unknown roles)
	Permissions []string
	// ErrorHandler defines how to handle authorization failures (default: renders the error)
	ErrorHandler func(ctx handler.Context, err error) handler.Response
}

// RequireRole creates a role authorization middleware bound to an existing
// authenticator. Taking the authenticator as an argument makes the ordering
// contract explicit: an authorizer cannot be constructed for a route whose
// chain has no authentication to rely on.
//
// Usage:
//
//	auth := middleware.Auth[*MyContext](tokens)
//
//	admin := r.With(auth.Middleware(), middleware.RequireRole(auth, "admin"))
//	admin.Get("/admin/users", handleUsers)
//
//	// Use the attached permissions in handlers
//	func handleUsers(ctx *MyContext) handler.Response {
//		perms, _ := middleware.GetPermissions(ctx)
//		return response.JSON(map[string]any{"permissions": perms})
//	}
//
// A request reaching the middleware without an authenticated user (the
// authenticator was skipped or misconfigured) gets 401. A user holding a
// different role gets 403 with the required role in the error details.
func RequireRole[C handler.Context](auth *AuthMiddleware[C], role string) handler.Middleware[C] {
	return RequireRoleWithConfig(auth, RequireRoleConfig{Role: role})
}

// RequireRoleWithConfig creates a role authorization middleware with custom
// configuration. Panics if the authenticator is nil or the role is empty.
func RequireRoleWithConfig[C handler.Context](auth *AuthMiddleware[C], cfg RequireRoleConfig) handler.Middleware[C] {
	if auth == nil {
		panic("authorize middleware: auth middleware is required")
	}
	if cfg.Role == "" {
		panic("authorize middleware: role is required")
	}

	if cfg.Permissions == nil {
		cfg.Permissions = defaultRolePermissions[cfg.Role]
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(ctx handler.Context, err error) handler.Response {
			return response.Error(err)
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			// Final runtime guard; the constructor dependency makes this
			// unreachable in correctly registered chains.
			user, ok := GetUser(ctx)
			if !ok {
				return cfg.ErrorHandler(ctx, response.ErrUnauthorized)
			}

			if user.Role != cfg.Role {
				return cfg.ErrorHandler(ctx, response.ErrForbidden.WithDetails(map[string]any{
					"required_role": cfg.Role,
				}))
			}

			ctx.SetValue(permissionsContextKey{}, slices.Clone(cfg.Permissions))

			return next(ctx)
		}
	}
}

// GetPermissions retrieves the permission list attached by RequireRole from
// the request context. Returns the permissions and a boolean indicating
// whether they were found.
func GetPermissions(ctx handler.Context) ([]string, bool) {
	perms, ok := ctx.Value(permissionsContextKey{}).([]string)
	return perms, ok
}
