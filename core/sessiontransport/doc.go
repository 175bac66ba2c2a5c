// Package sessiontransport carries session tokens over HTTP. It bridges the
// transport-agnostic core/session package and the session middleware's
// Load/Store contract.
//
// The Cookie transport stores Session.Token as a signed cookie. Loading
// degrades gracefully: a missing, tampered, or expired cookie produces a
// fresh anonymous session rather than an error, so every request handles a
// valid session. Storing persists the session through the manager, keeps the
// cookie's MaxAge aligned with the server-side expiration, and clears the
// cookie when the session was logged out.
//
//	cookieMgr, _ := cookie.New([]string{secret})
//	store := session.NewMemoryStore[AppData]()
//	mgr := session.NewManager[AppData](store, 24*time.Hour, 5*time.Minute)
//
//	transport := sessiontransport.NewCookie(mgr, cookieMgr, "__session")
//	r.Use(middleware.Session[*appContext, AppData](transport))
package sessiontransport
