package middleware

import (
	"maps"
	"net/http"

	"github.com/dmitrymomot/httpkit/core/handler"
)

// SecurityHeadersConfig selects which protective headers the middleware
// emits. Empty fields suppress their header entirely.
type SecurityHeadersConfig struct {
	// Skip bypasses the middleware for matching requests.
	Skip func(ctx handler.Context) bool

	// ContentTypeOptions sets X-Content-Type-Options.
	ContentTypeOptions string

	// FrameOptions sets X-Frame-Options.
	FrameOptions string

	// XSSProtection sets X-XSS-Protection.
	XSSProtection string

	// StrictTransportSecurity sets Strict-Transport-Security.
	StrictTransportSecurity string

	// ContentSecurityPolicy sets Content-Security-Policy.
	ContentSecurityPolicy string

	// ReferrerPolicy sets Referrer-Policy.
	ReferrerPolicy string

	// PermissionsPolicy sets Permissions-Policy.
	PermissionsPolicy string

	// CrossOriginOpenerPolicy sets Cross-Origin-Opener-Policy.
	CrossOriginOpenerPolicy string

	// CrossOriginEmbedderPolicy sets Cross-Origin-Embedder-Policy.
	CrossOriginEmbedderPolicy string

	// CrossOriginResourcePolicy sets Cross-Origin-Resource-Policy.
	CrossOriginResourcePolicy string

	// CustomHeaders adds arbitrary extra headers on top of the above.
	CustomHeaders map[string]string

	// IsDevelopment drops HSTS so local plain-HTTP setups keep working.
	IsDevelopment bool
}

var (
	// StrictSecurity locks everything down: no framing, no external
	// resources, preloaded HSTS, all risky browser APIs off. Expect it to
	// break third-party widgets and inline scripts.
	StrictSecurity = SecurityHeadersConfig{
		ContentTypeOptions:        "nosniff",
		FrameOptions:              "DENY",
		XSSProtection:             "1; mode=block",
		StrictTransportSecurity:   "max-age=63072000; includeSubDomains; preload",
		ContentSecurityPolicy:     "default-src 'none'; script-src 'self'; style-src 'self'; img-src 'self'; font-src 'self'; connect-src 'self'; frame-ancestors 'none'; base-uri 'self'; form-action 'self'",
		ReferrerPolicy:            "no-referrer",
		PermissionsPolicy:         "accelerometer=(), camera=(), geolocation=(), gyroscope=(), magnetometer=(), microphone=(), payment=(), usb=()",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginEmbedderPolicy: "require-corp",
		CrossOriginResourcePolicy: "same-origin",
	}

	// BalancedSecurity is the default: solid protection that still
	// tolerates same-origin frames, inline styles, and external images.
	BalancedSecurity = SecurityHeadersConfig{
		ContentTypeOptions:        "nosniff",
		FrameOptions:              "SAMEORIGIN",
		XSSProtection:             "1; mode=block",
		StrictTransportSecurity:   "max-age=31536000; includeSubDomains",
		ContentSecurityPolicy:     "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:; font-src 'self' data:",
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		PermissionsPolicy:         "geolocation=(), microphone=(), camera=()",
		CrossOriginOpenerPolicy:   "same-origin-allow-popups",
		CrossOriginEmbedderPolicy: "",
		CrossOriginResourcePolicy: "cross-origin",
	}

	// RelaxedSecurity keeps only the basics for applications where
	// stricter policies break required integrations.
	RelaxedSecurity = SecurityHeadersConfig{
		ContentTypeOptions:        "nosniff",
		FrameOptions:              "",
		XSSProtection:             "1; mode=block",
		StrictTransportSecurity:   "",
		ContentSecurityPolicy:     "",
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		PermissionsPolicy:         "",
		CrossOriginOpenerPolicy:   "",
		CrossOriginEmbedderPolicy: "",
		CrossOriginResourcePolicy: "",
	}

	// DevelopmentSecurity is for local work only, never production.
	DevelopmentSecurity = SecurityHeadersConfig{
		ContentTypeOptions: "nosniff",
		XSSProtection:      "1; mode=block",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		IsDevelopment:      true,
	}
)

// SecurityHeaders protects responses with the BalancedSecurity preset, a
// sensible default for most web applications:
//
//	r.Use(middleware.SecurityHeaders[*MyContext]())
func SecurityHeaders[C handler.Context]() handler.Middleware[C] {
	return SecurityHeadersWithConfig[C](BalancedSecurity)
}

// SecurityHeadersStrict applies the StrictSecurity preset. Test carefully:
// the CSP blocks inline scripts and any external resource.
func SecurityHeadersStrict[C handler.Context]() handler.Middleware[C] {
	return SecurityHeadersWithConfig[C](StrictSecurity)
}

// SecurityHeadersRelaxed applies the RelaxedSecurity preset for
// applications that cannot yet tolerate CSP or framing restrictions.
func SecurityHeadersRelaxed[C handler.Context]() handler.Middleware[C] {
	return SecurityHeadersWithConfig[C](RelaxedSecurity)
}

// SecurityHeadersWithConfig emits the headers selected by cfg on every
// response. The header set is computed once up front; per request the
// middleware only copies it onto the response.
//
//	cfg := middleware.BalancedSecurity
//	cfg.ContentSecurityPolicy = "default-src 'self'; img-src 'self' data:"
//	cfg.Skip = func(ctx handler.Context) bool {
//		return strings.HasPrefix(ctx.Request().URL.Path, "/embed/")
//	}
//	r.Use(middleware.SecurityHeadersWithConfig[*MyContext](cfg))
func SecurityHeadersWithConfig[C handler.Context](cfg SecurityHeadersConfig) handler.Middleware[C] {
	headers := cfg.headerSet()

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			response := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				for key, value := range headers {
					w.Header().Set(key, value)
				}
				return response(w, r)
			}
		}
	}
}

// headerSet flattens the config into the concrete header map to emit.
func (cfg SecurityHeadersConfig) headerSet() map[string]string {
	if cfg.IsDevelopment {
		cfg.StrictTransportSecurity = ""
	}

	pairs := [...]struct{ name, value string }{
		{"X-Content-Type-Options", cfg.ContentTypeOptions},
		{"X-Frame-Options", cfg.FrameOptions},
		{"X-XSS-Protection", cfg.XSSProtection},
		{"Strict-Transport-Security", cfg.StrictTransportSecurity},
		{"Content-Security-Policy", cfg.ContentSecurityPolicy},
		{"Referrer-Policy", cfg.ReferrerPolicy},
		{"Permissions-Policy", cfg.PermissionsPolicy},
		{"Cross-Origin-Opener-Policy", cfg.CrossOriginOpenerPolicy},
		{"Cross-Origin-Embedder-Policy", cfg.CrossOriginEmbedderPolicy},
		{"Cross-Origin-Resource-Policy", cfg.CrossOriginResourcePolicy},
	}

	headers := make(map[string]string, len(pairs)+len(cfg.CustomHeaders))
	for _, p := range pairs {
		if p.value != "" {
			headers[p.name] = p.value
		}
	}
	maps.Copy(headers, cfg.CustomHeaders)
	return headers
}
