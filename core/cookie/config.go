package cookie

import (
	"net/http"
	"strings"
)

// Config carries cookie manager settings read from the environment.
// Secrets is comma-separated to support key rotation.
type Config struct {
	Secrets  string        `env:"COOKIE_SECRETS" envDefault:""`
	Path     string        `env:"COOKIE_PATH" envDefault:"/"`
	Domain   string        `env:"COOKIE_DOMAIN" envDefault:""`
	MaxAge   int           `env:"COOKIE_MAX_AGE" envDefault:"0"`
	Secure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	HttpOnly bool          `env:"COOKIE_HTTP_ONLY" envDefault:"true"`
	SameSite http.SameSite `env:"COOKIE_SAME_SITE" envDefault:"2"` // SameSiteLaxMode
	MaxSize  int           `env:"COOKIE_MAX_SIZE" envDefault:"4096"`
	// GDPR consent settings
	ConsentCookieName string `env:"COOKIE_CONSENT_NAME" envDefault:"__cookie_consent"`
	ConsentVersion    string `env:"COOKIE_CONSENT_VERSION" envDefault:"1.0"`
	ConsentMaxAge     int    `env:"COOKIE_CONSENT_MAX_AGE" envDefault:"31536000"` // 1 year
}

// DefaultConfig returns the settings used when no environment is loaded.
func DefaultConfig() Config {
	return Config{
		Secrets:           "",
		Path:              "/",
		Domain:            "",
		MaxAge:            0,
		Secure:            false,
		HttpOnly:          true,
		SameSite:          http.SameSiteLaxMode,
		MaxSize:           MaxCookieSize,
		ConsentCookieName: "__cookie_consent",
		ConsentVersion:    "1.0",
		ConsentMaxAge:     365 * 24 * 60 * 60, // 1 year
	}
}

// parseSecrets splits the comma-separated secret list, dropping blanks so
// a trailing comma cannot smuggle in an empty key.
func (c Config) parseSecrets() []string {
	if c.Secrets == "" {
		return nil
	}

	parts := strings.Split(c.Secrets, ",")
	secrets := make([]string, 0, len(parts))

	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			secrets = append(secrets, s)
		}
	}

	return secrets
}

// NewFromConfig builds a Manager from cfg. Zero config values keep the
// package defaults; opts are applied last and win over the config.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	cookieOpts := make([]Option, 0)

	if cfg.Path != "" {
		cookieOpts = append(cookieOpts, WithPath(cfg.Path))
	}
	if cfg.Domain != "" {
		cookieOpts = append(cookieOpts, WithDomain(cfg.Domain))
	}
	if cfg.MaxAge != 0 {
		cookieOpts = append(cookieOpts, WithMaxAge(cfg.MaxAge))
	}
	if cfg.Secure {
		cookieOpts = append(cookieOpts, WithSecure(cfg.Secure))
	}
	if cfg.HttpOnly {
		cookieOpts = append(cookieOpts, WithHTTPOnly(cfg.HttpOnly))
	}
	if cfg.SameSite != 0 {
		cookieOpts = append(cookieOpts, WithSameSite(cfg.SameSite))
	}

	cookieOpts = append(cookieOpts, opts...)

	// ManagerOptions ignore zero values, so the defaults survive an
	// unset config.
	return NewWithOptions(cfg.parseSecrets(), cookieOpts,
		WithMaxSize(cfg.MaxSize),
		WithConsentCookie(cfg.ConsentCookieName),
		WithConsentVersion(cfg.ConsentVersion),
		WithConsentMaxAge(cfg.ConsentMaxAge),
	)
}
