package middleware

import (
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/httpkit/core/handler"
)

// CORSConfig controls the Cross-Origin Resource Sharing policy applied by
// CORSWithConfig.
type CORSConfig struct {
	// Skip bypasses CORS handling for matching requests.
	Skip func(ctx handler.Context) bool

	// AllowOrigins lists allowed origins; "*" allows all. Empty defaults
	// to allowing all origins.
	AllowOrigins []string

	// AllowMethods lists allowed methods. Empty defaults to
	// GET, HEAD, PUT, PATCH, POST, DELETE.
	AllowMethods []string

	// AllowHeaders lists request headers permitted in preflight. Empty
	// defaults to the common set including Authorization and Content-Type.
	AllowHeaders []string

	// ExposeHeaders lists response headers scripts may read cross-origin.
	ExposeHeaders []string

	// AllowCredentials permits cookies and Authorization headers. It is
	// never combined with a wildcard origin; the credentials header is
	// simply not emitted in that case.
	AllowCredentials bool

	// MaxAge is the preflight cache lifetime in seconds; zero disables
	// caching.
	MaxAge int

	// AllowOriginFunc validates origins dynamically and wins over
	// AllowOrigins when set. It returns the origin value to echo and
	// whether the origin is allowed.
	AllowOriginFunc func(origin string) (string, bool)
}

// corsPolicy is a CORSConfig with its derived values computed once at
// middleware construction instead of per request.
type corsPolicy struct {
	cfg           CORSConfig
	origins       map[string]bool
	allowMethods  string
	allowHeaders  string
	exposeHeaders string
}

// CORS returns CORS middleware with the default policy: every origin
// allowed via the "*" wildcard, common methods and headers, no
// credentials. Fine for public APIs and development; production apps with
// credentials want CORSWithConfig and an explicit origin list.
func CORS[C handler.Context]() handler.Middleware[C] {
	return CORSWithConfig[C](CORSConfig{})
}

// CORSWithConfig returns CORS middleware for the given policy. Preflight
// OPTIONS requests are answered directly without reaching the handler;
// all other responses get the access-control headers appended.
//
//	r.Use(middleware.CORSWithConfig[*Context](middleware.CORSConfig{
//		AllowOrigins:     []string{"https://app.example.com"},
//		AllowCredentials: true,
//		MaxAge:           86400,
//	}))
func CORSWithConfig[C handler.Context](cfg CORSConfig) handler.Middleware[C] {
	if len(cfg.AllowMethods) == 0 {
		cfg.AllowMethods = []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
		}
	}

	if len(cfg.AllowHeaders) == 0 {
		cfg.AllowHeaders = []string{
			"Accept",
			"Accept-Language",
			"Content-Language",
			"Content-Type",
			"Origin",
			"Authorization",
			"X-Request-ID",
		}
	}

	policy := &corsPolicy{
		cfg:           cfg,
		origins:       make(map[string]bool, len(cfg.AllowOrigins)),
		allowMethods:  strings.Join(cfg.AllowMethods, ","),
		allowHeaders:  strings.Join(cfg.AllowHeaders, ","),
		exposeHeaders: strings.Join(cfg.ExposeHeaders, ","),
	}
	for _, origin := range cfg.AllowOrigins {
		policy.origins[origin] = true
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			req := ctx.Request()
			allowedOrigin, allowed := policy.resolveOrigin(req.Header.Get("Origin"))

			// Preflight means OPTIONS plus a requested method; a plain
			// OPTIONS request goes through to the routed handler.
			if req.Method == http.MethodOptions &&
				req.Header.Get("Access-Control-Request-Method") != "" {
				return policy.preflight(req, allowedOrigin, allowed)
			}

			response := next(ctx)
			if !allowed {
				return response
			}
			return policy.decorate(response, allowedOrigin)
		}
	}
}

// resolveOrigin decides whether an origin may participate and which value
// to echo back. The custom function wins; otherwise an empty list or a
// "*" entry allows everything, and an explicit list requires an exact
// match.
func (p *corsPolicy) resolveOrigin(origin string) (string, bool) {
	if p.cfg.AllowOriginFunc != nil {
		return p.cfg.AllowOriginFunc(origin)
	}
	if len(p.cfg.AllowOrigins) == 0 || p.origins["*"] {
		return "*", true
	}
	if p.origins[origin] {
		return origin, true
	}
	return "", false
}

// preflight answers an OPTIONS probe: 204 with the negotiated headers when
// the origin and requested method pass, 403 otherwise.
func (p *corsPolicy) preflight(req *http.Request, allowedOrigin string, originAllowed bool) handler.Response {
	requestMethod := req.Header.Get("Access-Control-Request-Method")
	requestHeaders := req.Header.Get("Access-Control-Request-Headers")

	if !originAllowed || !slices.Contains(p.cfg.AllowMethods, requestMethod) {
		return func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusForbidden)
			return nil
		}
	}

	return func(w http.ResponseWriter, r *http.Request) error {
		headers := w.Header()
		headers.Set("Access-Control-Allow-Origin", allowedOrigin)
		headers.Set("Access-Control-Allow-Methods", p.allowMethods)

		if requestHeaders != "" {
			headers.Set("Access-Control-Allow-Headers", p.allowHeaders)
		}

		// The CORS spec forbids credentialed responses for the wildcard
		// origin.
		if p.cfg.AllowCredentials && allowedOrigin != "*" {
			headers.Set("Access-Control-Allow-Credentials", "true")
		}

		if p.cfg.MaxAge > 0 {
			headers.Set("Access-Control-Max-Age", strconv.Itoa(p.cfg.MaxAge))
		}

		// Caches must key on the negotiation headers.
		headers.Add("Vary", "Origin")
		headers.Add("Vary", "Access-Control-Request-Method")
		headers.Add("Vary", "Access-Control-Request-Headers")

		w.WriteHeader(http.StatusNoContent)
		return nil
	}
}

// decorate appends the access-control headers to a normal response.
func (p *corsPolicy) decorate(response handler.Response, allowedOrigin string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		headers := w.Header()
		headers.Set("Access-Control-Allow-Origin", allowedOrigin)

		if p.cfg.AllowCredentials && allowedOrigin != "*" {
			headers.Set("Access-Control-Allow-Credentials", "true")
		}

		if p.exposeHeaders != "" {
			headers.Set("Access-Control-Expose-Headers", p.exposeHeaders)
		}

		headers.Add("Vary", "Origin")

		return response(w, r)
	}
}

// AllowOriginWildcard allows every non-empty origin while echoing the
// origin itself instead of "*", which keeps credentials usable.
func AllowOriginWildcard() func(origin string) (string, bool) {
	return func(origin string) (string, bool) {
		if origin == "" {
			return "", false
		}
		return origin, true
	}
}

// AllowOriginSubdomain allows the named domain and any of its subdomains,
// with or without a port. Pass the bare domain, e.g. "example.com".
func AllowOriginSubdomain(domain string) func(origin string) (string, bool) {
	domain = strings.TrimPrefix(domain, "*.")
	domain = strings.TrimPrefix(domain, ".")
	domain = strings.ToLower(domain)
	domainWithDot := "." + domain

	return func(origin string) (string, bool) {
		if origin == "" {
			return "", false
		}

		u, err := url.Parse(origin)
		if err != nil || u.Host == "" {
			return "", false
		}

		host := strings.ToLower(u.Host)
		if host == domain || strings.HasSuffix(host, domainWithDot) {
			return origin, true
		}

		// Retry with any port stripped.
		if portIndex := strings.LastIndex(host, ":"); portIndex > 0 {
			host = host[:portIndex]
			if host == domain || strings.HasSuffix(host, domainWithDot) {
				return origin, true
			}
		}

		return "", false
	}
}
