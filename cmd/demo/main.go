package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrymomot/httpkit/core/config"
	"github.com/dmitrymomot/httpkit/core/cookie"
	"github.com/dmitrymomot/httpkit/core/logger"
	"github.com/dmitrymomot/httpkit/core/server"
	"github.com/dmitrymomot/httpkit/core/session"
	"github.com/dmitrymomot/httpkit/core/sessiontransport"
	redisdb "github.com/dmitrymomot/httpkit/integration/database/redis"
	"github.com/dmitrymomot/httpkit/pkg/feature"
	"github.com/dmitrymomot/httpkit/pkg/ratelimiter"
	"golang.org/x/sync/errgroup"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg Config
	config.MustLoad(&cfg) // panic on error

	log := logger.New(loggerOptions(cfg)...)

	if cfg.Cookie.Secrets == "" {
		cfg.Cookie.Secrets = devCookieSecret
		log.Warn("COOKIE_SECRETS is not set, using the insecure development secret")
	}

	cookieMgr, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		log.Error("Failed to create cookie manager", logger.Component("cookie"), logger.Error(err))
		os.Exit(1)
	}

	eg, ctx := errgroup.WithContext(ctx)

	var (
		sessionStore session.Store[SessionData]
		rateStore    ratelimiter.Store
		checks       []func(context.Context) error
	)
	if cfg.RedisURL != "" {
		client, err := redisdb.Connect(ctx, redisdb.Config{ConnectionURL: cfg.RedisURL})
		if err != nil {
			log.Error("Failed to connect to redis", logger.Component("redis"), logger.Error(err))
			os.Exit(1)
		}
		sessionStore = session.NewRedisStore[SessionData](client)
		rateStore = ratelimiter.NewRedisStore(client)
		checks = append(checks, redisdb.Healthcheck(client))
	} else {
		sessions := session.NewMemoryStore[SessionData](session.WithStoreLogger(log))
		rates := ratelimiter.NewMemoryStore(ratelimiter.WithMemoryStoreLogger(log))
		eg.Go(sessions.Run(ctx))
		eg.Go(rates.Run(ctx))
		sessionStore = sessions
		rateStore = rates
		checks = append(checks, rates.Healthcheck)
	}

	sessMgr := session.NewManagerFromConfig(sessionStore, cfg.Session)
	sessCookie := sessiontransport.NewCookieFromConfig(cfg.SessionTransport, sessMgr, cookieMgr)

	limiters := make(map[string]*ratelimiter.FixedWindow, 3)
	for tier, limit := range map[string]int{
		"strict":   cfg.StrictLimit,
		"standard": cfg.StandardLimit,
		"relaxed":  cfg.RelaxedLimit,
	} {
		limiter, err := ratelimiter.New(rateStore, ratelimiter.Config{Limit: limit, Window: cfg.RateWindow})
		if err != nil {
			log.Error("Failed to create rate limiter", logger.Component("ratelimiter"), logger.Error(err))
			os.Exit(1)
		}
		limiters[tier] = limiter
	}

	r := buildRouter(deps{
		log:      log,
		tokens:   cfg.Tokens(),
		flags:    feature.NewStaticProvider(demoFlags()...),
		strict:   limiters["strict"],
		standard: limiters["standard"],
		relaxed:  limiters["relaxed"],
		cookies:  cookieMgr,
		sessions: sessCookie,
		checks:   checks,
		started:  time.Now(),
		version:  version,
	})

	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log.With(logger.Component("server"))))
	if err != nil {
		log.Error("Failed to create server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	log.Info("Demo server starting", "addr", cfg.Server.Addr, "env", cfg.AppEnv)
	eg.Go(srv.Run(ctx, r))

	if err := eg.Wait(); err != nil {
		log.Error("Failed to run server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	log.Info("Application stopped")
}

func loggerOptions(cfg Config) []logger.Option {
	switch cfg.AppEnv {
	case "production":
		return []logger.Option{logger.WithProduction(cfg.AppName)}
	case "staging":
		return []logger.Option{logger.WithStaging(cfg.AppName)}
	default:
		return []logger.Option{logger.WithDevelopment(cfg.AppName)}
	}
}
