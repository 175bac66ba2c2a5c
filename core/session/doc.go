// Package session provides generic, type-safe server-side sessions with
// pluggable storage. The Data type parameter carries application-specific
// state (cart contents, preferences, flash messages) without type assertions.
//
// # Session Lifecycle
//
// Sessions start anonymous and carry a stable ID plus a rotating token. The
// token is the only value that leaves the server (cookie value or bearer
// token); it rotates on authentication to prevent session fixation:
//
//	import "github.com/dmitrymomot/httpkit/core/session"
//
//	type AppData struct {
//		Cart  []string `json:"cart,omitempty"`
//		Theme string   `json:"theme,omitempty"`
//	}
//
//	sess, err := session.New[AppData](session.NewSessionParams{
//		IP:        clientIP,
//		UserAgent: r.UserAgent(),
//	}, 24*time.Hour)
//
//	// Login: rotates the token, keeps the ID
//	err = sess.Authenticate(userID)
//
//	// Logout: marks the session for deletion on the next Store
//	sess.Logout()
//
// State changes mark the session as modified; unmodified sessions skip the
// store write entirely.
//
// # Manager
//
// Manager coordinates retrieval, persistence, and expiration against a Store:
//
//	store := session.NewMemoryStore[AppData]()
//	mgr := session.NewManager[AppData](store, 24*time.Hour, 5*time.Minute)
//
//	sess, err := mgr.GetByToken(ctx, token) // ErrExpired past TTL
//
//	// Persists modified sessions, extends expiry past the touch interval,
//	// deletes sessions marked by Logout (returned as ErrNotAuthenticated so
//	// the transport can clear its cookie).
//	err = mgr.Store(ctx, sess)
//
// The touch interval throttles expiry-extension writes: a session touched
// within the interval is not re-saved just to bump ExpiresAt.
//
// # Stores
//
// Two Store implementations ship with the package:
//
//   - MemoryStore: mutex-guarded maps with a background sweep of expired
//     sessions (Start/Stop or Run for errgroup). Single-instance deployments
//     and tests.
//   - RedisStore: JSON values under ID keys with a token index; key TTLs make
//     expired sessions disappear without explicit cleanup.
//
// Custom stores implement GetByID, GetByToken, Save, Delete, and
// DeleteExpired.
package session
