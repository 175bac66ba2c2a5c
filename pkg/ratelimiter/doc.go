// Package ratelimiter provides fixed-window rate limiting with pluggable storage backends.
//
// This package counts requests per key within fixed time windows and supports
// in-memory and Redis-backed counters. It's designed for per-client request
// limiting in web applications, APIs, and microservices.
//
// # Fixed Window Algorithm
//
// The fixed window algorithm works by:
//  1. Opening a window of fixed duration on the first request for a key
//  2. Incrementing a counter for every request within the window
//  3. Denying requests once the counter exceeds the limit
//  4. Resetting the counter wholesale when the window expires
//
// Counting is simple and cheap; the trade-off against sliding windows is that
// a client can spend up to twice the limit across a window boundary.
//
// # Core Types
//
// RateLimiter interface defines the contract for rate limiting:
//   - Allow(ctx, key): record one request and report the outcome
//
// FixedWindow implements RateLimiter with:
//   - A Limit/Window pair per limiter so each tier gets its own instance
//   - Pluggable storage backends (memory, Redis)
//   - Reset capability for administrative overrides
//
// # Usage
//
// Basic rate limiter setup:
//
//	// Create in-memory storage
//	store := ratelimiter.NewMemoryStore()
//
//	// Limit each key to 10 requests per minute
//	limiter, err := ratelimiter.New(store, ratelimiter.Config{
//		Limit:  10,
//		Window: time.Minute,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Recording a request:
//
//	result, err := limiter.Allow(ctx, "strict:"+clientIP)
//	if err != nil {
//		log.Printf("Rate limiter error: %v", err)
//		return
//	}
//
//	if !result.Allowed() {
//		log.Printf("Rate limited. Retry after: %v", result.RetryAfter())
//		return
//	}
//
//	log.Printf("%d of %d requests remaining until %s",
//		result.Remaining, result.Limit, result.ResetAt)
//
// # Storage Backends
//
// MemoryStore keeps counters in a mutex-guarded map and sweeps stale entries
// in the background. Start the sweep alongside the server:
//
//	store := ratelimiter.NewMemoryStore()
//	g.Go(store.Run(ctx))
//
// RedisStore shares counters across processes via INCR with a window TTL:
//
//	store := ratelimiter.NewRedisStore(redisClient)
//
// # Key Construction
//
// Keys identify whatever should be limited together. Prefix them with the
// tier so the same client tracked by two tiers uses two counters:
//
//	key := "api:" + clientip.GetIP(r)
package ratelimiter
