// Package response provides HTTP response helpers built around the
// handler.Response type: JSON and text rendering, redirects, typed HTTP
// errors, and composable decorators for headers, cookies, and caching.
//
// # Basic Usage
//
// Handlers return a handler.Response closure which the router executes:
//
//	import "github.com/dmitrymomot/httpkit/core/response"
//
//	func getUserHandler(ctx handler.Context) handler.Response {
//		user := User{ID: 1, Name: "John Doe"}
//		return response.JSON(user)
//	}
//
//	func createUserHandler(ctx handler.Context) handler.Response {
//		user, err := createUser(ctx.Request())
//		if err != nil {
//			return response.Error(err)
//		}
//		return response.JSONWithStatus(user, http.StatusCreated)
//	}
//
// # JSON Responses
//
// JSON marshals any value with the proper Content-Type header. Status codes
// 204 and 304 suppress the body as required by the HTTP spec:
//
//	response.JSON(map[string]string{"status": "ok"})
//	response.JSONWithStatus(user, http.StatusCreated)
//	response.NoContent()
//
// # Error Responses
//
// HTTPError is the canonical error payload. The package predefines an error
// for every standard HTTP status (ErrNotFound, ErrTooManyRequests, ...) and
// supports enrichment without mutating the shared values:
//
//	return response.Error(response.ErrNotFound.WithMessage("User not found"))
//
//	return response.Error(response.ErrBadRequest.WithDetails(map[string]any{
//		"field": "email",
//	}))
//
// Plain errors become a 500 with the original error attached as the cause.
// Errors implementing StatusCode() int map to the predefined error for that
// status. ToHTTPError exposes the same conversion for custom error handlers
// that enrich the error before rendering.
//
// # Redirects
//
//	response.Redirect("/login")                   // 302
//	response.RedirectPermanent("/new-home")       // 301
//	response.RedirectSeeOther("/result")          // 303, POST-redirect-GET
//	response.RedirectTemporary("/retry")          // 307, preserves method
//
// # Decorators
//
// Decorators wrap an existing response with cross-cutting concerns:
//
//	response.WithHeaders(response.JSON(data), map[string]string{
//		"X-API-Version": "1.0",
//	})
//
//	response.WithCookie(response.JSON(data), sessionCookie)
//
//	response.WithCache(response.JSON(data), time.Hour)
//
// # Error Handlers
//
// ErrorHandler and JSONErrorHandler plug into the router to render errors
// returned by handlers. JSONErrorHandler writes the HTTPError payload as
// JSON; ErrorHandler negotiates JSON or plain text from the Accept header.
package response
