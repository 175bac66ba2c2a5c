// Package router provides a generic, radix tree-based HTTP router with
// type-safe custom contexts, middleware composition, route grouping, and
// sub-router mounting.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/httpkit/core/router"
//
//	r := router.New[*router.Context]()
//
//	r.Get("/users", listUsersHandler)
//	r.Post("/users", createUserHandler)
//	r.Get("/users/{id}", getUserHandler)
//
//	http.ListenAndServe(":8080", r)
//
// # Path Parameters
//
// Patterns support named parameters ({id}), regexp-constrained parameters
// ({id:[0-9]+}) and trailing wildcards (/static/*):
//
//	r.Get("/users/{userID}/posts/{postID}", func(ctx *router.Context) handler.Response {
//		userID := ctx.Param("userID")
//		postID := ctx.Param("postID")
//		...
//	})
//
// # Custom Contexts
//
// The router is generic over any type implementing handler.Context. Provide a
// factory so each request gets your context type with typed accessors:
//
//	r := router.New[*app.Context](
//		router.WithContextFactory[*app.Context](app.NewContext),
//	)
//
// # Middleware
//
// Middleware must be registered before any route; Use panics otherwise, which
// turns a middleware-ordering mistake into a startup failure instead of a
// silent runtime gap:
//
//	r.Use(middleware.RequestID[*app.Context]())
//
//	// Per-route-group middleware
//	r.Group(func(g router.Router[*app.Context]) {
//		g.Use(authMiddleware)
//		g.Get("/profile", profileHandler)
//	})
//
//	// Inline chains
//	r.With(rateLimit).Get("/limited", limitedHandler)
//
// # Error Handling
//
// Handlers and middleware return errors through their Response; the router
// routes every error (including recovered panics, wrapped as PanicError) to a
// single error handler:
//
//	r := router.New[*router.Context](
//		router.WithErrorHandler(response.JSONErrorHandler[*router.Context]()),
//	)
//
// # Mounting
//
// Sub-routers can be mounted under a prefix; the mount point strips the
// prefix before delegating:
//
//	admin := router.New[*router.Context]()
//	admin.Get("/dashboard", dashboardHandler)
//	r.Mount("/admin", admin)
package router
