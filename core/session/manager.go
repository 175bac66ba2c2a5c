package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Manager wraps a Store with lifecycle policy: expiry validation on reads,
// sliding expiration on writes, and deletion when a session logs out.
type Manager[Data any] struct {
	store         Store[Data]
	ttl           time.Duration
	touchInterval time.Duration
}

// NewManager builds a manager over store. ttl is how long sessions live
// since last activity; touchInterval throttles how often that sliding
// expiry is written back.
func NewManager[Data any](store Store[Data], ttl, touchInterval time.Duration) *Manager[Data] {
	return &Manager[Data]{
		store:         store,
		ttl:           ttl,
		touchInterval: touchInterval,
	}
}

// alive screens a store read: lookup errors pass through, expired sessions
// become ErrExpired, and live ones are returned by value.
func (m *Manager[Data]) alive(sess *Session[Data], err error) (Session[Data], error) {
	if err != nil {
		return Session[Data]{}, err
	}
	if sess.IsExpired() {
		return Session[Data]{}, ErrExpired
	}
	return *sess, nil
}

// GetByID loads a session by its stable ID, rejecting expired ones with
// ErrExpired.
func (m *Manager[Data]) GetByID(ctx context.Context, id uuid.UUID) (Session[Data], error) {
	sess, err := m.store.GetByID(ctx, id)
	return m.alive(sess, err)
}

// GetByToken loads a session by its bearer token, rejecting expired ones
// with ErrExpired.
func (m *Manager[Data]) GetByToken(ctx context.Context, token string) (Session[Data], error) {
	sess, err := m.store.GetByToken(ctx, token)
	return m.alive(sess, err)
}

// evict removes the stored session and reports ErrNotAuthenticated so the
// transport knows to clear its cookie or token. A session already gone
// from the store is not an error.
func (m *Manager[Data]) evict(ctx context.Context, id uuid.UUID) error {
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return errors.Join(ErrDeleteSession, err)
	}
	return ErrNotAuthenticated
}

// Store persists the session according to its state. Logged-out sessions
// are deleted and ErrNotAuthenticated is returned so the transport knows
// to clear its cookie or token. Otherwise the expiry slides and only dirty
// sessions are written.
func (m *Manager[Data]) Store(ctx context.Context, sess Session[Data]) error {
	if sess.IsDeleted() {
		return m.evict(ctx, sess.ID)
	}

	sess.Touch(m.ttl, m.touchInterval)

	if sess.IsModified() {
		return m.store.Save(ctx, &sess)
	}

	return nil
}

// CleanupExpired purges expired sessions and reports how many went. Meant
// to run on a timer; nothing else reclaims storage.
func (m *Manager[Data]) CleanupExpired(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx)
}

// GetTTL exposes the configured session lifetime.
func (m *Manager[Data]) GetTTL() time.Duration {
	return m.ttl
}
