package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/httpkit/pkg/useragent"
)

// tokenBytes is the entropy of a session token before encoding.
const tokenBytes = 32

// Session is one client session. Data is whatever the application wants to
// keep per session (cart, preferences, flash messages).
//
// Sessions are value types: mutating methods take pointer receivers, and
// callers hand the updated value back to the manager or middleware to
// persist it. ID stays fixed for the session's whole life while Token
// rotates on privilege changes, which is what lets audit trails survive
// token rotation.
type Session[Data any] struct {
	// ID is the stable identifier, never rotated.
	ID uuid.UUID

	// Token authenticates the bearer; it travels in the cookie or JWT and
	// is replaced by Authenticate and Refresh.
	Token string

	// UserID is uuid.Nil until the session is authenticated.
	UserID uuid.UUID

	// Fingerprint ties the session to a device ("v1:" prefixed hash).
	Fingerprint string

	IP        string
	UserAgent string

	// Data is the application payload.
	Data Data

	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt time.Time

	// isModified marks the session dirty so stores can skip clean writes
	isModified bool
}

// NewSessionParams carries the request facts recorded on a new session.
type NewSessionParams struct {
	Fingerprint string
	IP          string
	UserAgent   string
}

// New builds an anonymous session with a fresh ID and token, already
// marked dirty so the first save persists it. The IP is required; without
// it hijacking checks have nothing to compare against.
func New[Data any](params NewSessionParams, ttl time.Duration) (Session[Data], error) {
	if params.IP == "" {
		return Session[Data]{}, ErrMissingIP
	}

	token, err := generateToken()
	if err != nil {
		return Session[Data]{}, errors.Join(ErrTokenGeneration, err)
	}

	now := time.Now()
	return Session[Data]{
		ID:          uuid.New(),
		Token:       token,
		UserID:      uuid.Nil,
		Fingerprint: params.Fingerprint,
		IP:          params.IP,
		UserAgent:   params.UserAgent,
		Data:        *new(Data),
		ExpiresAt:   now.Add(ttl),
		CreatedAt:   now,
		UpdatedAt:   now,
		isModified:  true,
	}, nil
}

// Device describes the session's client from its User-Agent, e.g.
// "Chrome/120.0 (Windows, desktop)" or "Bot: Googlebot". Falls back to
// "Unknown device" when the string is absent or unparseable.
func (s Session[Data]) Device() string {
	if s.UserAgent == "" {
		return "Unknown device"
	}

	ua, err := useragent.Parse(s.UserAgent)
	if err != nil {
		return "Unknown device"
	}

	return ua.GetShortIdentifier()
}

// Authenticate binds the session to a user, rotating the token so any
// copy stolen before login stops working. The optional data value
// replaces the session payload in the same step.
func (s *Session[Data]) Authenticate(userID uuid.UUID, data ...Data) error {
	if err := s.rotateToken(); err != nil {
		return err
	}
	s.UserID = userID
	if len(data) > 0 {
		s.Data = data[0]
	}
	s.UpdatedAt = time.Now()
	s.isModified = true
	return nil
}

// Refresh rotates the token while keeping the ID and authentication state,
// for periodic rotation policies.
func (s *Session[Data]) Refresh() error {
	if err := s.rotateToken(); err != nil {
		return err
	}
	s.UpdatedAt = time.Now()
	s.isModified = true
	return nil
}

// Logout marks the session for deletion on the next save.
func (s *Session[Data]) Logout() {
	s.DeletedAt = time.Now()
	s.isModified = true
}

// SetData replaces the session payload.
func (s *Session[Data]) SetData(data Data) {
	s.Data = data
	s.UpdatedAt = time.Now()
	s.isModified = true
}

// Touch slides the expiry forward, but only once per touchInterval so hot
// sessions do not rewrite storage on every request.
func (s *Session[Data]) Touch(ttl, touchInterval time.Duration) {
	if time.Since(s.UpdatedAt) >= touchInterval {
		s.ExpiresAt = time.Now().Add(ttl)
		s.UpdatedAt = time.Now()
		s.isModified = true
	}
}

// IsAuthenticated reports whether a user is bound to a live token.
func (s Session[Data]) IsAuthenticated() bool {
	return s.UserID != uuid.Nil && s.Token != ""
}

// IsDeleted reports whether Logout has run.
func (s Session[Data]) IsDeleted() bool {
	return !s.DeletedAt.IsZero()
}

// IsModified reports whether the session has unsaved changes.
func (s Session[Data]) IsModified() bool {
	return s.isModified
}

// IsExpired reports whether the expiry has passed.
func (s Session[Data]) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

func (s *Session[Data]) rotateToken() error {
	newToken, err := generateToken()
	if err != nil {
		return errors.Join(ErrTokenGeneration, err)
	}
	s.Token = newToken
	s.isModified = true
	return nil
}

// generateToken returns 256 bits of randomness as unpadded base64url.
func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
