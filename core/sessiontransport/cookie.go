package sessiontransport

import (
	"errors"
	"time"

	"github.com/dmitrymomot/httpkit/core/cookie"
	"github.com/dmitrymomot/httpkit/core/handler"
	"github.com/dmitrymomot/httpkit/core/session"
	"github.com/dmitrymomot/httpkit/pkg/clientip"
	"github.com/dmitrymomot/httpkit/pkg/fingerprint"
)

// Cookie carries the session token in a signed cookie. It implements the
// Load/Store transport contract used by the session middleware.
type Cookie[Data any] struct {
	manager   *session.Manager[Data]
	cookieMgr *cookie.Manager
	name      string
}

// NewCookie creates a cookie-based session transport.
func NewCookie[Data any](mgr *session.Manager[Data], cookieMgr *cookie.Manager, name string) *Cookie[Data] {
	return &Cookie[Data]{
		manager:   mgr,
		cookieMgr: cookieMgr,
		name:      name,
	}
}

// Load resolves the session for the request. A missing, tampered, expired, or
// unknown token degrades to a fresh anonymous session instead of failing the
// request; the fresh session reaches the store on the next Store call.
func (c *Cookie[Data]) Load(ctx handler.Context) (session.Session[Data], error) {
	token, err := c.cookieMgr.GetSigned(ctx.Request(), c.name)
	if err == nil {
		if sess, err := c.manager.GetByToken(ctx, token); err == nil {
			return sess, nil
		}
	}

	r := ctx.Request()
	return session.New[Data](session.NewSessionParams{
		Fingerprint: fingerprint.Cookie(r),
		IP:          clientip.GetIP(r),
		UserAgent:   r.Header.Get("User-Agent"),
	}, c.manager.GetTTL())
}

// Store persists the session and refreshes the cookie. Sessions marked for
// deletion (Logout) are removed from the store and the cookie is cleared; the
// manager signals that case with ErrNotAuthenticated, which Store absorbs.
func (c *Cookie[Data]) Store(ctx handler.Context, sess session.Session[Data]) error {
	if err := c.manager.Store(ctx, sess); err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			c.cookieMgr.Delete(ctx.ResponseWriter(), c.name)
			return nil
		}
		return err
	}

	until := time.Until(sess.ExpiresAt)
	if until <= 0 {
		c.cookieMgr.Delete(ctx.ResponseWriter(), c.name)
		return nil
	}

	// Cookie lifetime tracks the server-side expiration.
	return c.cookieMgr.SetSigned(ctx.ResponseWriter(), ctx.Request(), c.name, sess.Token,
		cookie.WithHTTPOnly(true),
		cookie.WithMaxAge(int(until.Seconds())),
		cookie.WithEssential(),
	)
}
