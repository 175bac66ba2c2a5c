package sessiontransport

import (
	"github.com/dmitrymomot/httpkit/core/cookie"
	"github.com/dmitrymomot/httpkit/core/session"
)

// CookieConfig provides environment-based configuration for the cookie
// session transport.
type CookieConfig struct {
	// CookieName is the name of the session cookie.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"__session"`
}

// NewCookieFromConfig creates a cookie-based session transport from
// configuration. The session.Manager and cookie.Manager are provided by the
// caller.
func NewCookieFromConfig[Data any](cfg CookieConfig, mgr *session.Manager[Data], cookieMgr *cookie.Manager) *Cookie[Data] {
	name := cfg.CookieName
	if name == "" {
		name = "__session"
	}
	return NewCookie(mgr, cookieMgr, name)
}
