package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on Redis. Sessions are stored as JSON under an
// ID key with a secondary token index; both keys expire with the session, so
// expired sessions vanish without explicit cleanup.
type RedisStore[Data any] struct {
	client    redis.UniversalClient
	keyPrefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*redisStoreConfig)

type redisStoreConfig struct {
	keyPrefix string
}

// WithKeyPrefix overrides the key namespace. Defaults to "session".
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(c *redisStoreConfig) {
		if prefix != "" {
			c.keyPrefix = prefix
		}
	}
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore[Data any](client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore[Data] {
	cfg := redisStoreConfig{keyPrefix: "session"}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &RedisStore[Data]{
		client:    client,
		keyPrefix: cfg.keyPrefix,
	}
}

func (rs *RedisStore[Data]) idKey(id uuid.UUID) string {
	return rs.keyPrefix + ":id:" + id.String()
}

func (rs *RedisStore[Data]) tokenKey(token string) string {
	return rs.keyPrefix + ":token:" + token
}

// GetByID retrieves a session by its stable identifier.
func (rs *RedisStore[Data]) GetByID(ctx context.Context, id uuid.UUID) (*Session[Data], error) {
	raw, err := rs.client.Get(ctx, rs.idKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var sess Session[Data]
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, ErrNotFound
	}
	return &sess, nil
}

// GetByToken retrieves a session through the token index.
func (rs *RedisStore[Data]) GetByToken(ctx context.Context, token string) (*Session[Data], error) {
	idStr, err := rs.client.Get(ctx, rs.tokenKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, ErrNotFound
	}
	return rs.GetByID(ctx, id)
}

// Save stores the session and its token index with the session's remaining
// lifetime as the key TTL. A rotated token replaces the old index entry.
func (rs *RedisStore[Data]) Save(ctx context.Context, session *Session[Data]) error {
	if session == nil {
		return ErrSaveSession
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return ErrExpired
	}

	data, err := json.Marshal(session)
	if err != nil {
		return errors.Join(ErrSaveSession, err)
	}

	var staleToken string
	if raw, err := rs.client.Get(ctx, rs.idKey(session.ID)).Bytes(); err == nil {
		var prev Session[Data]
		if json.Unmarshal(raw, &prev) == nil && prev.Token != session.Token {
			staleToken = prev.Token
		}
	}

	pipe := rs.client.TxPipeline()
	pipe.Set(ctx, rs.idKey(session.ID), data, ttl)
	pipe.Set(ctx, rs.tokenKey(session.Token), session.ID.String(), ttl)
	if staleToken != "" {
		pipe.Del(ctx, rs.tokenKey(staleToken))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Join(ErrSaveSession, err)
	}
	return nil
}

// Delete removes the session and its token index.
func (rs *RedisStore[Data]) Delete(ctx context.Context, id uuid.UUID) error {
	sess, err := rs.GetByID(ctx, id)
	if err != nil {
		return err
	}

	pipe := rs.client.TxPipeline()
	pipe.Del(ctx, rs.idKey(id))
	pipe.Del(ctx, rs.tokenKey(sess.Token))
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Join(ErrDeleteSession, err)
	}
	return nil
}

// DeleteExpired is a no-op for Redis: key TTLs expire sessions natively.
func (rs *RedisStore[Data]) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

// Healthcheck verifies Redis connectivity. Suitable for readiness probes.
func (rs *RedisStore[Data]) Healthcheck(ctx context.Context) error {
	return rs.client.Ping(ctx).Err()
}
