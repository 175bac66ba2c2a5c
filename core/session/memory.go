package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store using in-memory maps. Suitable for single
// instance deployments and tests; sessions are lost on restart.
type MemoryStore[Data any] struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]Session[Data]
	byToken  map[string]uuid.UUID

	cleanupInterval time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*memoryStoreConfig)

type memoryStoreConfig struct {
	cleanupInterval time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

// WithCleanupInterval sets how often expired sessions are swept.
// Set to 0 to disable automatic cleanup.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(c *memoryStoreConfig) {
		c.cleanupInterval = interval
	}
}

// WithShutdownTimeout sets the graceful shutdown timeout for Stop.
func WithShutdownTimeout(timeout time.Duration) MemoryStoreOption {
	return func(c *memoryStoreConfig) {
		if timeout > 0 {
			c.shutdownTimeout = timeout
		}
	}
}

// WithStoreLogger sets the logger for cleanup operations.
func WithStoreLogger(logger *slog.Logger) MemoryStoreOption {
	return func(c *memoryStoreConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewMemoryStore creates an in-memory session store.
// Call Start (or Run with errgroup) to begin background cleanup.
func NewMemoryStore[Data any](opts ...MemoryStoreOption) *MemoryStore[Data] {
	cfg := memoryStoreConfig{
		cleanupInterval: 5 * time.Minute,
		shutdownTimeout: 30 * time.Second,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &MemoryStore[Data]{
		sessions:        make(map[uuid.UUID]Session[Data]),
		byToken:         make(map[string]uuid.UUID),
		cleanupInterval: cfg.cleanupInterval,
		shutdownTimeout: cfg.shutdownTimeout,
		logger:          cfg.logger,
	}
}

// GetByID retrieves a session by its stable identifier.
func (ms *MemoryStore[Data]) GetByID(ctx context.Context, id uuid.UUID) (*Session[Data], error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	sess, ok := ms.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &sess, nil
}

// GetByToken retrieves a session by its rotating token.
func (ms *MemoryStore[Data]) GetByToken(ctx context.Context, token string) (*Session[Data], error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	id, ok := ms.byToken[token]
	if !ok {
		return nil, ErrNotFound
	}
	sess, ok := ms.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &sess, nil
}

// Save stores a session copy, reindexing the token when it has rotated.
func (ms *MemoryStore[Data]) Save(ctx context.Context, session *Session[Data]) error {
	if session == nil {
		return ErrSaveSession
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if prev, ok := ms.sessions[session.ID]; ok && prev.Token != session.Token {
		delete(ms.byToken, prev.Token)
	}

	ms.sessions[session.ID] = *session
	ms.byToken[session.Token] = session.ID
	return nil
}

// Delete removes a session by ID.
func (ms *MemoryStore[Data]) Delete(ctx context.Context, id uuid.UUID) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	sess, ok := ms.sessions[id]
	if !ok {
		return ErrNotFound
	}

	delete(ms.byToken, sess.Token)
	delete(ms.sessions, id)
	return nil
}

// DeleteExpired removes all expired sessions and returns the count removed.
func (ms *MemoryStore[Data]) DeleteExpired(ctx context.Context) (int64, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	var removed int64
	for id, sess := range ms.sessions {
		if sess.IsExpired() {
			delete(ms.byToken, sess.Token)
			delete(ms.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// Start begins the background cleanup loop. Blocks until the context is
// cancelled; use Run for the errgroup pattern or call in a goroutine.
func (ms *MemoryStore[Data]) Start(ctx context.Context) error {
	ms.mu.Lock()
	if ms.cancel != nil {
		ms.mu.Unlock()
		return fmt.Errorf("session memory store already started")
	}
	if ms.cleanupInterval <= 0 {
		ms.mu.Unlock()
		return fmt.Errorf("cleanup interval must be > 0, got %v (use WithCleanupInterval to configure)", ms.cleanupInterval)
	}
	ms.ctx, ms.cancel = context.WithCancel(ctx)
	ms.mu.Unlock()

	ms.logger.InfoContext(ms.ctx, "session store cleanup started",
		slog.Duration("cleanup_interval", ms.cleanupInterval))

	ticker := time.NewTicker(ms.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ms.ctx.Done():
			return ms.ctx.Err()
		case <-ticker.C:
			ms.sweep()
		}
	}
}

// Stop gracefully shuts down the background cleanup with a timeout.
func (ms *MemoryStore[Data]) Stop() error {
	ms.mu.Lock()
	if ms.cancel == nil {
		ms.mu.Unlock()
		return fmt.Errorf("session memory store not started")
	}
	cancel := ms.cancel
	ms.cancel = nil
	ms.mu.Unlock()

	cancel()

	ctx, ctxCancel := context.WithTimeout(context.Background(), ms.shutdownTimeout)
	defer ctxCancel()

	done := make(chan struct{})
	go func() {
		ms.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout exceeded after %s", ms.shutdownTimeout)
	}
}

// Run provides errgroup compatibility for coordinated lifecycle management.
func (ms *MemoryStore[Data]) Run(ctx context.Context) func() error {
	return func() error {
		errCh := make(chan error, 1)
		go func() {
			errCh <- ms.Start(ctx)
		}()

		select {
		case <-ctx.Done():
			_ = ms.Stop()
			<-errCh
			return nil
		case err := <-errCh:
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}

func (ms *MemoryStore[Data]) sweep() {
	ms.mu.RLock()
	if ms.cancel == nil {
		ms.mu.RUnlock()
		return
	}
	ms.wg.Add(1)
	ms.mu.RUnlock()
	defer ms.wg.Done()

	removed, _ := ms.DeleteExpired(context.Background())
	if removed > 0 {
		ms.logger.Info("expired sessions removed", slog.Int64("count", removed))
	}
}
