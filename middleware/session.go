package middleware

import (
	"io"
	"log/slog"

	"github.com/dmitrymomot/httpkit/core/handler"
	"github.com/dmitrymomot/httpkit/core/response"
	"github.com/dmitrymomot/httpkit/core/session"
)

type sessionKey struct{}

// SessionTransport moves sessions between requests and storage. The
// sessiontransport package provides cookie and bearer token
// implementations.
type SessionTransport[Data any] interface {
	Load(handler.Context) (session.Session[Data], error)
	Store(handler.Context, session.Session[Data]) error
}

// SessionConfig configures the session middleware.
type SessionConfig[C handler.Context, Data any] struct {
	// Skip bypasses session handling for matching requests.
	Skip func(ctx C) bool

	// Transport loads and stores sessions. Required.
	Transport SessionTransport[Data]

	// Logger records load and store failures; defaults to a discard
	// logger.
	Logger *slog.Logger

	// RequireAuth rejects requests whose session has no authenticated
	// user; RequireGuest rejects the opposite. Setting both is a
	// configuration bug and panics.
	RequireAuth  bool
	RequireGuest bool

	// ErrorHandler shapes the response for auth failures and store
	// errors. Defaults to a 401 error response.
	ErrorHandler func(ctx C, err error) handler.Response
}

// Session loads the request's session before the handler runs and writes
// it back afterwards. Handlers read it with GetSession and publish changes
// with SetSession:
//
//	r.Use(middleware.Session[*MyContext, MySessionData](transport))
//
//	func handleDashboard(ctx *MyContext) handler.Response {
//		sess, ok := middleware.GetSession[MySessionData](ctx)
//		if !ok {
//			return response.Error(response.ErrInternalServerError)
//		}
//		return response.JSON(map[string]any{"user_id": sess.UserID})
//	}
//
// A failed load degrades to an empty session rather than failing the
// request; a failed store goes through the error handler.
func Session[C handler.Context, Data any](transport SessionTransport[Data]) handler.Middleware[C] {
	return SessionWithConfig[C, Data](SessionConfig[C, Data]{
		Transport: transport,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

// SessionWithConfig is Session with authentication gating and custom error
// handling:
//
//	cfg := middleware.SessionConfig[*MyContext, MySessionData]{
//		Transport:   transport,
//		RequireAuth: true,
//		ErrorHandler: func(ctx *MyContext, err error) handler.Response {
//			return response.Redirect("/login")
//		},
//	}
//	protected.Use(middleware.SessionWithConfig(cfg))
//
// RequireGuest is the mirror gate for login and signup pages, answering
// 403 (or the custom handler) when an authenticated user hits them.
func SessionWithConfig[C handler.Context, Data any](cfg SessionConfig[C, Data]) handler.Middleware[C] {
	if cfg.Transport == nil {
		panic("session middleware: transport is required")
	}

	if cfg.RequireAuth && cfg.RequireGuest {
		panic("session middleware: RequireAuth and RequireGuest cannot both be true")
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(ctx C, err error) handler.Response {
			return response.Error(response.ErrUnauthorized)
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			sess, err := cfg.Transport.Load(ctx)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return response.Error(ctxErr)
				}
				cfg.Logger.ErrorContext(ctx, "session middleware: failed to load session", "error", err)
				// Keep serving with a fresh session; the transport will
				// mint a new token on store.
				sess = session.Session[Data]{}
			}

			if cfg.RequireAuth && !sess.IsAuthenticated() {
				return cfg.ErrorHandler(ctx, response.ErrUnauthorized)
			}

			if cfg.RequireGuest && sess.IsAuthenticated() {
				return cfg.ErrorHandler(ctx, response.ErrForbidden)
			}

			ctx.SetValue(sessionKey{}, sess)

			resp := next(ctx)

			// The handler may have replaced the session via SetSession,
			// or removed it entirely.
			currentSess, ok := GetSession[Data](ctx)
			if !ok {
				return resp
			}

			if err := cfg.Transport.Store(ctx, currentSess); err != nil {
				cfg.Logger.ErrorContext(ctx, "session store failed", "error", err)
				return cfg.ErrorHandler(ctx, err)
			}

			return resp
		}
	}
}

// GetSession returns the request's session as placed in the context by the
// middleware.
func GetSession[Data any](ctx handler.Context) (session.Session[Data], bool) {
	if ctx == nil {
		return session.Session[Data]{}, false
	}

	if sess, ok := ctx.Value(sessionKey{}).(session.Session[Data]); ok {
		return sess, true
	}

	return session.Session[Data]{}, false
}

// MustGetSession is GetSession for routes where the middleware is known to
// have run; it panics when the session is missing.
func MustGetSession[Data any](ctx handler.Context) session.Session[Data] {
	sess, ok := GetSession[Data](ctx)
	if !ok {
		panic("session not found in context")
	}
	return sess
}

// SetSession publishes a modified session back into the context so the
// middleware stores it when the handler returns.
func SetSession[Data any](ctx handler.Context, sess session.Session[Data]) {
	ctx.SetValue(sessionKey{}, sess)
}
