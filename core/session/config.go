package session

import (
	"time"
)

// Config holds session manager configuration loadable from the environment.
type Config struct {
	// TTL is the session time-to-live (idle timeout).
	TTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	// TouchInterval is the minimum time between expiration extensions on
	// access. Throttles store writes for busy sessions; 0 extends on every
	// request.
	TouchInterval time.Duration `env:"SESSION_TOUCH_INTERVAL" envDefault:"5m"`
}

// NewManagerFromConfig creates a session manager from configuration. Zero
// values fall back to the env defaults (24h TTL, 5m touch interval).
func NewManagerFromConfig[Data any](store Store[Data], cfg Config) *Manager[Data] {
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.TouchInterval < 0 {
		cfg.TouchInterval = 5 * time.Minute
	}
	return NewManager(store, cfg.TTL, cfg.TouchInterval)
}
