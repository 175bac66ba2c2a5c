package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// window tracks request counts for one key's current fixed window.
type window struct {
	count      int64
	resetAt    time.Time
	lastAccess time.Time // lets the sweeper find abandoned keys
}

// MemoryStore is the in-process Store: fixed-window counters in a map,
// with a background sweeper that drops keys nothing has touched lately.
// Suitable for single-instance deployments; multi-instance setups want
// RedisStore so all replicas share the counters.
type MemoryStore struct {
	mu      sync.RWMutex
	windows map[string]*window

	cleanupInterval time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	running atomic.Bool
	wg      sync.WaitGroup

	windowsCreated atomic.Int64
	windowsRemoved atomic.Int64
}

// MemoryStoreStats is a point-in-time snapshot for monitoring.
type MemoryStoreStats struct {
	WindowsCreated int64 // window counters created since start
	WindowsRemoved int64 // stale windows swept
	ActiveWindows  int   // windows currently held
	IsRunning      bool  // sweeper goroutine alive
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often the sweeper runs. Zero disables
// sweeping, at the cost of the map growing with every distinct key.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		ms.cleanupInterval = interval
	}
}

// WithMemoryStoreShutdownTimeout bounds how long Stop waits for an
// in-flight sweep.
func WithMemoryStoreShutdownTimeout(timeout time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if timeout > 0 {
			ms.shutdownTimeout = timeout
		}
	}
}

// WithMemoryStoreLogger sets the logger for sweeper lifecycle events.
func WithMemoryStoreLogger(logger *slog.Logger) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if logger != nil {
			ms.logger = logger
		}
	}
}

// NewMemoryStore builds the store. Counting works immediately; call
// Start (or wire Run into an errgroup) to begin sweeping stale keys.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		windows:         make(map[string]*window),
		cleanupInterval: 5 * time.Minute,
		shutdownTimeout: 30 * time.Second,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(ms)
	}

	return ms
}

// Increment adds one request to the key's current window. An expired window
// is replaced wholesale, which is what makes this fixed-window counting:
// the count never decays gradually, it restarts from zero on rollover.
func (ms *MemoryStore) Increment(ctx context.Context, key string, windowDur time.Duration) (int64, time.Time, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	w, exists := ms.windows[key]

	if !exists {
		w = &window{resetAt: now.Add(windowDur)}
		ms.windows[key] = w
		ms.windowsCreated.Add(1)
	} else if !now.Before(w.resetAt) {
		w.count = 0
		w.resetAt = now.Add(windowDur)
	}

	w.count++
	w.lastAccess = now

	return w.count, w.resetAt, nil
}

func (ms *MemoryStore) Reset(ctx context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.windows, key)
	return nil
}

// Start runs the sweeper until ctx is cancelled. It blocks, so either
// dedicate a goroutine or use Run with an errgroup.
func (ms *MemoryStore) Start(ctx context.Context) error {
	ms.mu.Lock()
	if ms.cancel != nil {
		ms.mu.Unlock()
		return fmt.Errorf("memory store already started")
	}

	if ms.cleanupInterval <= 0 {
		ms.mu.Unlock()
		return fmt.Errorf("cleanup interval must be > 0, got %v (use WithCleanupInterval to configure)", ms.cleanupInterval)
	}

	ms.ctx, ms.cancel = context.WithCancel(ctx)
	ms.mu.Unlock()

	ms.running.Store(true)
	defer ms.running.Store(false)

	ms.logger.InfoContext(ms.ctx, "memory store cleanup started",
		slog.Duration("cleanup_interval", ms.cleanupInterval))

	ticker := time.NewTicker(ms.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ms.ctx.Done():
			ms.logger.InfoContext(context.Background(), "memory store cleanup stopping")
			return ms.ctx.Err()
		case <-ticker.C:
			ms.sweep()
		}
	}
}

// Stop cancels the sweeper and waits, up to the shutdown timeout, for
// any sweep already in flight.
func (ms *MemoryStore) Stop() error {
	ms.mu.Lock()
	if ms.cancel == nil {
		ms.mu.Unlock()
		return fmt.Errorf("memory store not started")
	}

	cancel := ms.cancel
	ms.cancel = nil
	ms.mu.Unlock()

	cancel()

	ms.logger.InfoContext(context.Background(), "memory store stopping, waiting for cleanup to complete",
		slog.Duration("timeout", ms.shutdownTimeout))

	ctx, ctxCancel := context.WithTimeout(context.Background(), ms.shutdownTimeout)
	defer ctxCancel()

	done := make(chan struct{})
	go func() {
		ms.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		ms.logger.InfoContext(context.Background(), "memory store stopped cleanly")
		return nil
	case <-ctx.Done():
		ms.logger.WarnContext(context.Background(), "memory store shutdown timeout exceeded",
			slog.Duration("timeout", ms.shutdownTimeout))
		return fmt.Errorf("shutdown timeout exceeded after %s", ms.shutdownTimeout)
	}
}

// Run adapts the store's lifecycle to an errgroup: the returned
// function starts the sweeper, and on ctx cancellation stops it and
// reports nil so shutdown is not an error.
func (ms *MemoryStore) Run(ctx context.Context) func() error {
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

// sweep runs one stale-key pass, registered with the WaitGroup so Stop
// can wait for it. The registration is skipped once Stop has begun.
func (ms *MemoryStore) sweep() {
	ms.mu.RLock()
	if ms.cancel == nil {
		ms.mu.RUnlock()
		return
	}
	ms.wg.Add(1)
	ms.mu.RUnlock()

	defer ms.wg.Done()
	ms.sweepStale()
}

// sweepStale drops windows untouched for an hour. The threshold is
// deliberately much longer than any sane rate limit window, so only
// truly abandoned keys (departed clients, rotated tokens) are removed.
func (ms *MemoryStore) sweepStale() {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	const staleThreshold = 1 * time.Hour

	removed := 0
	for key, w := range ms.windows {
		if now.Sub(w.lastAccess) > staleThreshold {
			delete(ms.windows, key)
			removed++
		}
	}

	if removed > 0 {
		ms.windowsRemoved.Add(int64(removed))
	}
}

// Stats snapshots the store's counters. Safe to call from any
// goroutine.
func (ms *MemoryStore) Stats() MemoryStoreStats {
	ms.mu.RLock()
	isRunning := ms.cancel != nil
	activeWindows := len(ms.windows)
	ms.mu.RUnlock()

	return MemoryStoreStats{
		WindowsCreated: ms.windowsCreated.Load(),
		WindowsRemoved: ms.windowsRemoved.Load(),
		ActiveWindows:  activeWindows,
		IsRunning:      isRunning,
	}
}

// Healthcheck reports the store unhealthy when sweeping is configured
// but the sweeper is not running, which would mean unbounded memory
// growth.
func (ms *MemoryStore) Healthcheck(ctx context.Context) error {
	stats := ms.Stats()

	if ms.cleanupInterval > 0 && !stats.IsRunning {
		return fmt.Errorf("cleanup is configured but not running")
	}

	return nil
}

// Close stops the sweeper. Deprecated: use Stop.
func (ms *MemoryStore) Close() {
	_ = ms.Stop()
}
