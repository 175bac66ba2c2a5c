package ratelimiter

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on Redis using the INCR-with-expiry pattern:
// the first hit in a window creates the counter and sets its TTL, subsequent
// hits increment it, and Redis expires the key when the window closes. Counters
// are shared across processes, so limits hold for the whole deployment.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*redisStoreConfig)

type redisStoreConfig struct {
	keyPrefix string
}

// WithKeyPrefix overrides the key namespace. Defaults to "ratelimit".
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(c *redisStoreConfig) {
		if prefix != "" {
			c.keyPrefix = prefix
		}
	}
}

// NewRedisStore creates a Redis-backed window counter store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	cfg := redisStoreConfig{keyPrefix: "ratelimit"}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &RedisStore{
		client:    client,
		keyPrefix: cfg.keyPrefix,
	}
}

func (rs *RedisStore) key(key string) string {
	return rs.keyPrefix + ":" + key
}

func (rs *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	redisKey := rs.key(key)

	pipe := rs.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	ttl := pipe.PTTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, err
	}

	remaining := ttl.Val()
	if remaining < 0 {
		// First hit in this window, or a counter that lost its expiry: both
		// get a fresh window TTL so the key cannot linger forever.
		if err := rs.client.PExpire(ctx, redisKey, window).Err(); err != nil {
			return 0, time.Time{}, err
		}
		remaining = window
	}

	return incr.Val(), time.Now().Add(remaining), nil
}

func (rs *RedisStore) Reset(ctx context.Context, key string) error {
	return rs.client.Del(ctx, rs.key(key)).Err()
}

// Healthcheck verifies Redis connectivity. Suitable for readiness probes.
func (rs *RedisStore) Healthcheck(ctx context.Context) error {
	return rs.client.Ping(ctx).Err()
}
