package ratelimiter_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/httpkit/pkg/ratelimiter"
)

func TestMemoryStore_Increment(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	window := time.Minute

	t.Run("first hit opens a window at count 1", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore()

		before := time.Now()
		count, resetAt, err := store.Increment(ctx, "new-key", window)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)
		assert.WithinDuration(t, before.Add(window), resetAt, time.Second)
	})

	t.Run("counts requests within the window", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore()

		key := "test-count"

		var lastReset time.Time
		for i := int64(1); i <= 5; i++ {
			count, resetAt, err := store.Increment(ctx, key, window)
			require.NoError(t, err)
			assert.Equal(t, i, count)

			if !lastReset.IsZero() {
				assert.Equal(t, lastReset, resetAt, "window expiry should not move while the window is open")
			}
			lastReset = resetAt
		}
	})

	t.Run("counter restarts when the window rolls over", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore()

		key := "test-rollover"
		shortWindow := 50 * time.Millisecond

		for range 3 {
			_, _, err := store.Increment(ctx, key, shortWindow)
			require.NoError(t, err)
		}

		time.Sleep(shortWindow + 10*time.Millisecond)

		count, resetAt, err := store.Increment(ctx, key, shortWindow)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), count, "expired window should restart counting from scratch")
		assert.WithinDuration(t, time.Now().Add(shortWindow), resetAt, time.Second)
	})

	t.Run("keys count independently", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore()

		for range 4 {
			_, _, err := store.Increment(ctx, "busy-key", window)
			require.NoError(t, err)
		}

		count, _, err := store.Increment(ctx, "quiet-key", window)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestMemoryStore_Reset(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	window := time.Minute

	t.Run("resets existing counter", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore()

		key := "test-reset"

		for range 8 {
			_, _, err := store.Increment(ctx, key, window)
			require.NoError(t, err)
		}

		err := store.Reset(ctx, key)
		assert.NoError(t, err)

		count, _, err := store.Increment(ctx, key, window)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("reset non-existent key succeeds", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore()

		err := store.Reset(ctx, "non-existent")
		assert.NoError(t, err)
	})
}

func TestMemoryStore_StartStop(t *testing.T) {
	t.Parallel()

	t.Run("start and stop cleanup successfully", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore(
			ratelimiter.WithCleanupInterval(50 * time.Millisecond),
		)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Start in background
		go func() {
			_ = store.Start(ctx)
		}()

		// Wait for startup
		time.Sleep(10 * time.Millisecond)

		// Verify it's running
		stats := store.Stats()
		assert.True(t, stats.IsRunning)

		// Stop gracefully
		err := store.Stop()
		assert.NoError(t, err)

		// Verify it stopped
		stats = store.Stats()
		assert.False(t, stats.IsRunning)
	})

	t.Run("fails to start when already started", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore(
			ratelimiter.WithCleanupInterval(50 * time.Millisecond),
		)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Start first time
		go func() {
			_ = store.Start(ctx)
		}()

		time.Sleep(10 * time.Millisecond)

		// Try to start again
		err := store.Start(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already started")

		_ = store.Stop()
	})

	t.Run("fails to stop when not started", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore()

		err := store.Stop()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not started")
	})

	t.Run("fails to start with zero cleanup interval", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore(
			ratelimiter.WithCleanupInterval(0),
		)

		ctx := context.Background()
		err := store.Start(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "must be > 0")
	})
}

func TestMemoryStore_Run(t *testing.T) {
	t.Parallel()

	t.Run("run with errgroup pattern", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore(
			ratelimiter.WithCleanupInterval(50 * time.Millisecond),
		)

		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()

		// Run in background
		errCh := make(chan error, 1)
		go func() {
			errCh <- store.Run(ctx)()
		}()

		// Wait for startup
		time.Sleep(10 * time.Millisecond)

		// Verify it's running
		stats := store.Stats()
		assert.True(t, stats.IsRunning)

		// Cancel context
		cancel()

		// Wait for graceful shutdown
		err := <-errCh
		assert.NoError(t, err)

		// Verify it stopped
		stats = store.Stats()
		assert.False(t, stats.IsRunning)
	})
}

func TestMemoryStore_Stats(t *testing.T) {
	t.Parallel()

	t.Run("tracks window creation and removal", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore()

		ctx := context.Background()
		window := time.Minute

		// Create some windows
		_, _, _ = store.Increment(ctx, "key1", window)
		_, _, _ = store.Increment(ctx, "key2", window)
		_, _, _ = store.Increment(ctx, "key3", window)
		_, _, _ = store.Increment(ctx, "key3", window)

		stats := store.Stats()
		assert.Equal(t, int64(3), stats.WindowsCreated, "repeat hits should not create new windows")
		assert.Equal(t, 3, stats.ActiveWindows)
		assert.Equal(t, int64(0), stats.WindowsRemoved)
		assert.False(t, stats.IsRunning)
	})
}

func TestMemoryStore_Healthcheck(t *testing.T) {
	t.Parallel()

	t.Run("healthy when cleanup disabled", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore(
			ratelimiter.WithCleanupInterval(0),
		)

		err := store.Healthcheck(context.Background())
		assert.NoError(t, err)
	})

	t.Run("unhealthy when cleanup configured but not running", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore(
			ratelimiter.WithCleanupInterval(50 * time.Millisecond),
		)

		err := store.Healthcheck(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not running")
	})

	t.Run("healthy when cleanup running", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore(
			ratelimiter.WithCleanupInterval(50 * time.Millisecond),
		)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Start cleanup
		go func() {
			_ = store.Start(ctx)
		}()

		time.Sleep(10 * time.Millisecond)

		err := store.Healthcheck(context.Background())
		assert.NoError(t, err)

		_ = store.Stop()
	})
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	window := time.Minute

	t.Run("concurrent increments same key", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore()

		key := "concurrent-same"
		goroutines := 10
		hitsPerGoroutine := 5

		var wg sync.WaitGroup
		wg.Add(goroutines)

		for range goroutines {
			go func() {
				defer wg.Done()
				for range hitsPerGoroutine {
					_, _, err := store.Increment(ctx, key, window)
					assert.NoError(t, err)
				}
			}()
		}

		wg.Wait()

		count, _, err := store.Increment(ctx, key, window)
		assert.NoError(t, err)
		assert.Equal(t, int64(goroutines*hitsPerGoroutine+1), count, "no increments should be lost under concurrency")
	})

	t.Run("concurrent different keys", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore()

		goroutines := 20
		var wg sync.WaitGroup
		wg.Add(goroutines)

		for i := range goroutines {
			go func(idx int) {
				defer wg.Done()
				key := "key-" + string(rune('a'+idx))

				for range 5 {
					_, _, err := store.Increment(ctx, key, window)
					assert.NoError(t, err)
				}

				if idx%2 == 0 {
					err := store.Reset(ctx, key)
					assert.NoError(t, err)
				}
			}(i)
		}

		wg.Wait()
	})
}
