package session

import "errors"

// Lookup and lifecycle failures. Stores return the lookup sentinels
// directly; the manager wraps storage problems in the operation ones.
var (
	// ErrNotFound: no session exists for the given ID or token.
	ErrNotFound = errors.New("session not found")
	// ErrExpired: the session exists but its expiry has passed.
	ErrExpired = errors.New("session has expired")
	// ErrNotAuthenticated: the session carries no authenticated user or
	// the token it presented is no longer valid.
	ErrNotAuthenticated = errors.New("authentication failed")

	// ErrMissingIP: sessions record the client IP at creation and refuse
	// to exist without one.
	ErrMissingIP = errors.New("IP address is required")
	// ErrTokenGeneration: minting a session token failed.
	ErrTokenGeneration = errors.New("failed to generate token")
	// ErrSaveSession wraps store failures during save.
	ErrSaveSession = errors.New("failed to save session")
	// ErrDeleteSession wraps store failures during delete.
	ErrDeleteSession = errors.New("failed to delete session")
)
