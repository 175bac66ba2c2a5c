// Package redis connects to Redis with retry and verification, for the
// components that need shared state across instances: rate limit
// counters and session storage.
//
// Connect parses the URL, dials with exponential backoff, and pings
// before returning the client, so a successful return means Redis is
// actually usable, not merely configured:
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Shared counters across replicas:
//	limiter, err := ratelimiter.New(ratelimiter.NewRedisStore(client), ratelimiter.Config{
//		Limit:  60,
//		Window: time.Minute,
//	})
//
// Config maps onto REDIS_* environment variables: REDIS_URL (required),
// REDIS_RETRY_ATTEMPTS (3), REDIS_RETRY_INTERVAL (5s),
// REDIS_CONNECT_TIMEOUT (30s), REDIS_SCAN_BATCH_SIZE (1000). Both
// redis:// and rediss:// URLs are accepted, with credentials and a
// database index in the usual positions; other schemes are rejected
// with ErrFailedToParseRedisConnString.
//
// Healthcheck returns a func(context.Context) error that pings the
// client, in exactly the shape health.Readiness consumes:
//
//	r.Get("/health/ready", health.Readiness[*AppContext](
//		log,
//		redis.Healthcheck(client),
//	))
//
// Failures surface as sentinel errors (ErrEmptyConnectionURL,
// ErrFailedToParseRedisConnString, ErrRedisNotReady,
// ErrHealthcheckFailed) wrapping the go-redis cause, so startup code
// can errors.Is its way to the right reaction. Retrying respects
// context cancellation and gives up early when the deadline passes.
package redis
