package main

import (
	"strings"
	"time"

	"github.com/dmitrymomot/httpkit/core/cookie"
	"github.com/dmitrymomot/httpkit/core/server"
	"github.com/dmitrymomot/httpkit/core/session"
	"github.com/dmitrymomot/httpkit/core/sessiontransport"
	"github.com/dmitrymomot/httpkit/middleware"
	"github.com/dmitrymomot/httpkit/pkg/feature"
)

type Config struct {
	AppName string `env:"APP_NAME" envDefault:"httpkit-demo"`
	AppEnv  string `env:"APP_ENV" envDefault:"development"`

	// DemoTokens overrides the built-in bearer token table.
	// Format: "token:role,token:role" where role is user, admin, or moderator.
	DemoTokens string `env:"DEMO_TOKENS" envDefault:""`

	// RedisURL switches session and rate-limit storage from memory to Redis
	// when set, e.g. redis://localhost:6379/0.
	RedisURL string `env:"REDIS_URL" envDefault:""`

	// Rate limit tiers, requests per window.
	StrictLimit   int           `env:"RATE_LIMIT_STRICT" envDefault:"10"`
	StandardLimit int           `env:"RATE_LIMIT_STANDARD" envDefault:"60"`
	RelaxedLimit  int           `env:"RATE_LIMIT_RELAXED" envDefault:"300"`
	RateWindow    time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`

	Cookie           cookie.Config
	Session          session.Config
	SessionTransport sessiontransport.CookieConfig
	Server           server.Config
}

// devCookieSecret keeps the demo bootable without environment setup.
// Set COOKIE_SECRETS in any real deployment.
const devCookieSecret = "insecure-dev-only-secret-0123456789abcdef"

// Tokens builds the bearer token table. DEMO_TOKENS entries map custom
// tokens onto the built-in mock users by role; unknown roles are skipped.
func (c Config) Tokens() middleware.StaticTokens {
	if c.DemoTokens == "" {
		return defaultTokens()
	}

	byRole := make(map[string]middleware.User, 3)
	for _, u := range defaultTokens() {
		byRole[u.Role] = u
	}

	tokens := make(middleware.StaticTokens)
	for _, pair := range strings.Split(c.DemoTokens, ",") {
		token, role, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || token == "" {
			continue
		}
		user, ok := byRole[strings.TrimSpace(role)]
		if !ok {
			continue
		}
		tokens[token] = user
	}

	if len(tokens) == 0 {
		return defaultTokens()
	}
	return tokens
}

func defaultTokens() middleware.StaticTokens {
	return middleware.StaticTokens{
		"user-token-123":      {ID: "usr_001", Name: "John Doe", Email: "john@example.com", Role: "user"},
		"admin-token-456":     {ID: "usr_002", Name: "Jane Admin", Email: "jane@example.com", Role: "admin"},
		"moderator-token-789": {ID: "usr_003", Name: "Mike Moder", Email: "mike@example.com", Role: "moderator"},
	}
}

// demoFlags is the static feature flag table served by the demo.
func demoFlags() []feature.Flag {
	return []feature.Flag{
		{Name: "new-dashboard", Description: "Redesigned dashboard", Enabled: true, Rollout: 100},
		{Name: "beta-search", Description: "New search engine", Enabled: true, Rollout: 50},
		{Name: "experimental-api", Description: "Next generation API", Enabled: true, RequiresAuth: true, Rollout: 25},
		{Name: "dark-mode", Description: "Dark theme", Enabled: false},
	}
}
