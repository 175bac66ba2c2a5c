package session

import (
	"context"

	"github.com/google/uuid"
)

// Store persists sessions. Sessions are addressable two ways: by ID, which
// is stable for the session's whole life, and by token, which rotates on
// Refresh and Authenticate. Implementations keep both lookups consistent
// across rotation and must be safe for concurrent use.
//
// Lookups return ErrNotFound when nothing matches. Returned sessions are
// private copies; mutating one does not change the stored state until Save.
type Store[Data any] interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Session[Data], error)
	GetByToken(ctx context.Context, token string) (*Session[Data], error)
	Save(ctx context.Context, session *Session[Data]) error
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteExpired sweeps sessions past their expiry and reports how
	// many were removed.
	DeleteExpired(ctx context.Context) (int64, error)
}
