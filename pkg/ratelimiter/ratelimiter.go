package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// RateLimiter is the contract consumed by middleware and handlers.
type RateLimiter interface {
	// Allow records one request for key and reports whether it fits within
	// the configured window.
	Allow(ctx context.Context, key string) (Result, error)
}

// Config defines a rate limit tier: at most Limit requests per Window.
type Config struct {
	Limit  int           `env:"RATE_LIMIT_REQUESTS" envDefault:"60"`
	Window time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
}

// Result describes the outcome of a single Allow call.
type Result struct {
	// Limit is the configured maximum for the window.
	Limit int
	// Remaining is how many requests are left in the current window, never negative.
	Remaining int
	// ResetAt is when the current window rolls over and the counter restarts.
	ResetAt time.Time

	allowed bool
}

// Allowed reports whether the request fit within the limit.
func (r Result) Allowed() bool { return r.allowed }

// RetryAfter returns how long the client should wait before retrying.
// Zero when the request was allowed or the window has already rolled over.
func (r Result) RetryAfter() time.Duration {
	if r.allowed {
		return 0
	}
	d := time.Until(r.ResetAt)
	if d < 0 {
		return 0
	}
	return d
}

// Store persists window counters. Implementations must be safe for
// concurrent use.
type Store interface {
	// Increment adds one request to the key's current window, starting a new
	// window when none is active, and returns the count and window expiry.
	Increment(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)
	// Reset clears the key's counter, lifting the limit immediately.
	Reset(ctx context.Context, key string) error
}

// FixedWindow implements RateLimiter with a fixed-window counter: the first
// request for a key opens a window of the configured duration, every request
// within it increments a counter, and the counter resets wholesale when the
// window expires. Cheaper than sliding windows at the cost of allowing up to
// 2x the limit across a window boundary.
type FixedWindow struct {
	store Store
	cfg   Config
}

// New creates a fixed-window rate limiter backed by the given store.
func New(store Store, cfg Config) (*FixedWindow, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store is required", ErrInvalidConfig)
	}
	if cfg.Limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidConfig, cfg.Limit)
	}
	if cfg.Window <= 0 {
		return nil, fmt.Errorf("%w: window must be positive, got %s", ErrInvalidConfig, cfg.Window)
	}

	return &FixedWindow{store: store, cfg: cfg}, nil
}

func (fw *FixedWindow) Allow(ctx context.Context, key string) (Result, error) {
	count, resetAt, err := fw.store.Increment(ctx, key, fw.cfg.Window)
	if err != nil {
		return Result{}, errors.Join(ErrStoreUnavailable, err)
	}

	remaining := fw.cfg.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Limit:     fw.cfg.Limit,
		Remaining: remaining,
		ResetAt:   resetAt,
		allowed:   count <= int64(fw.cfg.Limit),
	}, nil
}

// Reset clears the counter for key, typically for administrative overrides.
func (fw *FixedWindow) Reset(ctx context.Context, key string) error {
	return fw.store.Reset(ctx, key)
}
