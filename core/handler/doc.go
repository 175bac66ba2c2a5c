// Package handler defines the core abstractions for HTTP request processing:
// type-safe handlers with custom context types, composable middleware, and a
// clean separation between producing a response and rendering it.
//
// # Core Types
//
//	import "github.com/dmitrymomot/httpkit/core/handler"
//
//	// Response renders an HTTP response
//	type Response func(w http.ResponseWriter, r *http.Request) error
//
//	// Type-safe handler with custom context
//	type HandlerFunc[C Context] func(ctx C) Response
//
//	// Error handling function
//	type ErrorHandler[C Context] func(ctx C, err error)
//
//	// Middleware function for handler composition
//	type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
//
// # Context Interface
//
// Context extends the standard context.Context with HTTP-specific accessors:
//
//	type Context interface {
//		context.Context
//		Request() *http.Request
//		ResponseWriter() http.ResponseWriter
//		Param(key string) string
//		SetValue(key, val any)
//	}
//
// Handlers return a Response closure instead of writing directly, which lets
// middleware inspect and decorate the response before anything reaches the
// wire:
//
//	func helloHandler(ctx handler.Context) handler.Response {
//		name := ctx.Param("name")
//		if name == "" {
//			name = "World"
//		}
//
//		return func(w http.ResponseWriter, r *http.Request) error {
//			w.Header().Set("Content-Type", "text/plain")
//			_, err := w.Write([]byte("Hello, " + name + "!"))
//			return err
//		}
//	}
//
// Applications typically implement Context themselves to add typed accessors
// for values their middleware attach (current user, device info, request id),
// and hand the router a factory for that type. See the router package for the
// factory wiring and the middleware package for producers of those values.
package handler
