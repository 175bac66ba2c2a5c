// Package middleware provides HTTP middleware components for common cross-cutting concerns
// in web applications. It offers middleware for request tracing, client IP extraction,
// structured request logging, response transformation, CORS, security headers, bearer
// token authentication, role authorization, rate limiting, device detection, feature
// flag gating, sessions, and device fingerprinting.
//
// The middleware package is designed to work with the handler.Context interface from the
// httpkit framework, providing type-safe, composable middleware that can be easily chained
// together to build robust HTTP services.
//
// # Architecture
//
// All middleware functions follow a consistent pattern:
//   - Generic functions that accept a handler.Context type parameter
//   - Configuration structs for customization
//   - Default constructors for common use cases
//   - WithConfig constructors for advanced configuration
//   - Context helpers for retrieving stored values
//
// Each middleware can be configured to:
//   - Skip execution based on custom logic
//   - Store extracted data in request context
//   - Include information in response headers
//   - Reject requests before they reach the handler
//
// Missing required configuration (a nil token store, an empty role name) is a
// programmer error and panics at registration time rather than failing per request.
//
// # Middleware Ordering
//
// Registration order is execution order for the request phase; the response phase
// unwinds in reverse. A typical global chain:
//
//	r.Use(middleware.RequestID[*YourContext]())
//	r.Use(middleware.ClientIP[*YourContext]())
//	r.Use(middleware.LoggingWithLogger[*YourContext](logger))
//	r.Use(middleware.Transform[*YourContext]())
//	r.Use(middleware.CORS[*YourContext]())
//	r.Use(middleware.SecurityHeaders[*YourContext]())
//
// Route-scoped middleware attaches via With:
//
//	auth := middleware.Auth[*YourContext](tokens)
//	admin := r.With(auth.Middleware(), middleware.RequireRole(auth, "admin"))
//	admin.Get("/admin/stats", handleStats)
//
// # Request ID Middleware
//
// The RequestID middleware generates unique identifiers for each request to
// facilitate request tracing and correlation across distributed systems.
//
//	// Basic usage - generates UUID v4, echoes it in X-Request-ID
//	app.Use(middleware.RequestID[*YourContext]())
//
//	// Custom configuration
//	app.Use(middleware.RequestIDWithConfig[*YourContext](middleware.RequestIDConfig{
//		HeaderName:  "X-Trace-ID",
//		UseExisting: true, // Use existing header if present
//		Generator: func() string {
//			return "req_" + generateCustomID()
//		},
//	}))
//
//	// Retrieve request ID in handlers
//	func handler(ctx *YourContext) handler.Response {
//		if requestID, ok := middleware.GetRequestID(ctx); ok {
//			log.Printf("Processing request: %s", requestID)
//		}
//		return response.JSON(map[string]any{"status": "ok"})
//	}
//
// # Client IP Middleware
//
// The ClientIP middleware extracts the real client IP address from various headers,
// handling proxy forwarding scenarios correctly.
//
//	// Basic usage - stores IP in context
//	app.Use(middleware.ClientIP[*YourContext]())
//
//	// Retrieve client IP in handlers
//	func handler(ctx *YourContext) handler.Response {
//		if ip, ok := middleware.GetClientIP(ctx); ok {
//			// Use the client IP
//		}
//		return response.JSON(map[string]any{"status": "ok"})
//	}
//
// # Logging Middleware
//
// The Logging middleware emits one structured log record per request with method,
// path, status, duration, and any request ID or client IP stored by earlier
// middleware.
//
//	app.Use(middleware.LoggingWithLogger[*YourContext](slog.Default()))
//
// # Response Transformation Middleware
//
// The Transform middleware buffers JSON responses and merges a _meta envelope
// into the top-level object, carrying the request ID, processing time, a
// timestamp, and an API version. Non-JSON and error responses pass through
// untouched; every response gains an X-Processing-Time header.
//
//	app.Use(middleware.Transform[*YourContext]())
//
//	// {"items": [...], "_meta": {"requestId": "...", "processingTime": "1.2ms", ...}}
//
// # CORS Middleware
//
// The CORS middleware answers preflight requests and decorates responses with
// the appropriate Access-Control headers.
//
//	app.Use(middleware.CORSWithConfig[*YourContext](middleware.CORSConfig{
//		AllowedOrigins:   []string{"https://app.example.com"},
//		AllowCredentials: true,
//	}))
//
// # Security Headers Middleware
//
// The SecurityHeaders middleware applies a hardened response header set. Presets
// cover the common postures:
//
//	app.Use(middleware.SecurityHeaders[*YourContext]())        // balanced defaults
//	app.Use(middleware.SecurityHeadersStrict[*YourContext]())  // maximum lockdown
//	app.Use(middleware.SecurityHeadersRelaxed[*YourContext]()) // embeddable content
//
// # Bearer Token Authentication Middleware
//
// The Auth middleware resolves bearer tokens against a TokenStore and stores the
// authenticated user in context. StaticTokens covers fixed token sets; implement
// TokenStore for database-backed lookups.
//
//	tokens := middleware.StaticTokens{
//		"user-token-123": {ID: "usr_001", Name: "John Doe", Role: "user"},
//	}
//	auth := middleware.Auth[*YourContext](tokens)
//
//	protected := r.With(auth.Middleware())
//	protected.Get("/profile", func(ctx *YourContext) handler.Response {
//		user, _ := middleware.GetUser(ctx)
//		return response.JSON(user)
//	})
//
// Tokens are read from the Authorization header (Bearer scheme) or the token
// query parameter by default. Custom extraction strategies compose:
//
//	middleware.TokenFromMultiple(
//		middleware.TokenFromAuthHeader(),
//		middleware.TokenFromCookie("session_token"),
//		middleware.TokenFromQuery("token"),
//	)
//
// # Role Authorization Middleware
//
// The RequireRole middleware restricts a route to users carrying a specific role.
// Its constructor takes the Auth middleware instance, so a chain that authorizes
// without authenticating cannot be registered by accident.
//
//	admin := r.With(auth.Middleware(), middleware.RequireRole(auth, "admin"))
//	admin.Get("/admin/users", handleUsers)
//
//	// Authorized handlers can read the granted permission set
//	func handleUsers(ctx *YourContext) handler.Response {
//		perms, _ := middleware.GetPermissions(ctx)
//		return response.JSON(map[string]any{"permissions": perms})
//	}
//
// # Rate Limiting Middleware
//
// The RateLimit middleware enforces fixed-window request limits with pluggable
// storage backends. Different routes can carry different tiers by constructing
// one limiter per tier.
//
//	store := ratelimiter.NewMemoryStore()
//	limiter, _ := ratelimiter.New(store, ratelimiter.Config{
//		Limit:  60,
//		Window: time.Minute,
//	})
//
//	app.Use(middleware.RateLimit[*YourContext](middleware.RateLimitConfig{
//		Limiter:    limiter,
//		SetHeaders: true,
//	}))
//
// When SetHeaders is enabled, responses include:
//   - X-RateLimit-Limit: Maximum number of requests allowed
//   - X-RateLimit-Remaining: Number of requests remaining in current window
//   - X-RateLimit-Reset: Unix timestamp when the rate limit resets
//   - Retry-After: Seconds to wait before retrying (when limit exceeded)
//
// Keys default to the client IP stored by the ClientIP middleware. KeyExtractor
// switches the dimension, for example to an API key or authenticated user ID.
//
// # Device Detection Middleware
//
// The DeviceDetect middleware classifies the User-Agent into device type, OS,
// and browser, stores the result in context, reports it in X-Device-Type,
// X-Browser, and X-OS headers, and annotates JSON responses to mobile clients
// with a mobileOptimized marker.
//
//	app.Use(middleware.DeviceDetect[*YourContext]())
//
//	func handler(ctx *YourContext) handler.Response {
//		if device, ok := middleware.GetDevice(ctx); ok && device.IsMobile() {
//			// Serve the reduced payload
//		}
//		return response.JSON(payload)
//	}
//
// # Feature Flag Middleware
//
// The FeatureFlag middleware gates a route behind a named flag. Admission
// requires the flag to exist, be enabled, cover the client's deterministic
// rollout bucket, and have its authentication requirement satisfied. Rejections
// map to 404, 403, and 401 respectively.
//
//	flags := feature.NewStaticProvider(
//		feature.Flag{Name: "new-dashboard", Enabled: true, Rollout: 100},
//		feature.Flag{Name: "beta-search", Enabled: true, Rollout: 50},
//	)
//
//	r.With(middleware.FeatureFlag[*YourContext](flags, "beta-search")).
//		Get("/search/v2", handleSearch)
//
// # Session Middleware
//
// The Session middleware loads a session from its transport before the handler
// runs and stores it back afterwards. Flash messages read through the session
// are consumed on first read.
//
//	r.Use(middleware.Session[*YourContext, SessionData](sessionTransport))
//
//	func handler(ctx *YourContext) handler.Response {
//		sess, _ := middleware.GetSession[SessionData](ctx)
//		return response.JSON(map[string]any{"session_id": sess.ID})
//	}
//
// # Device Fingerprinting Middleware
//
// The Fingerprint middleware generates stable device fingerprints based on
// request characteristics to help identify devices and detect suspicious activity.
//
//	app.Use(middleware.Fingerprint[*YourContext]())
//
//	func handler(ctx *YourContext) handler.Response {
//		if fp, ok := middleware.GetFingerprint(ctx); ok {
//			// Use the device fingerprint
//		}
//		return response.JSON(map[string]any{"status": "ok"})
//	}
//
// # Body Limit Middleware
//
// The BodyLimit middleware rejects request bodies over a configured size before
// they are read in full.
//
//	app.Use(middleware.BodyLimitWithSize[*YourContext](1 * middleware.MB))
//
// # Error Handling
//
// The middleware package integrates with the response package error system:
//   - Auth returns 401 Unauthorized for missing or unknown tokens
//   - RequireRole returns 403 Forbidden with the required role in the details
//   - RateLimit returns 429 Too Many Requests when limits are exceeded
//   - FeatureFlag returns 404, 403, or 401 depending on why the gate rejected
//   - BodyLimit returns 413 Request Entity Too Large for oversized bodies
//
// Custom error handlers can be provided for fine-grained control over error responses.
package middleware
