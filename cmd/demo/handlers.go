package main

import (
	"cmp"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrymomot/httpkit/core/binder"
	"github.com/dmitrymomot/httpkit/core/cookie"
	"github.com/dmitrymomot/httpkit/core/handler"
	"github.com/dmitrymomot/httpkit/core/response"
	"github.com/dmitrymomot/httpkit/core/validator"
	"github.com/dmitrymomot/httpkit/middleware"
)

// Request types

type UsersQuery struct {
	Role string `query:"role" sanitize:"trim,lower"`
}

type IngestRequest struct {
	Name  string   `json:"name" sanitize:"trim" validate:"required;min:2;max:100"`
	Email string   `json:"email" sanitize:"email" validate:"required;email"`
	Tags  []string `json:"tags" sanitize:"trim,lower" validate:"max:10"`
}

const demoCookieName = "demo_cookie"

// Public demos

func publicHandler() handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		return response.JSON(map[string]any{
			"message": "This endpoint is public, no authentication required",
			"path":    ctx.Request().URL.Path,
		})
	}
}

func headersHandler() handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		r := ctx.Request()
		return response.JSON(map[string]any{
			"request_id": ctx.RequestID(),
			"client_ip":  ctx.ClientIP(),
			"headers": map[string]string{
				"user_agent":      r.UserAgent(),
				"accept":          r.Header.Get("Accept"),
				"accept_language": r.Header.Get("Accept-Language"),
				"origin":          r.Header.Get("Origin"),
				"referer":         r.Referer(),
			},
		})
	}
}

func deviceHandler() handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		device, ok := ctx.Device()
		if !ok {
			return response.Error(response.ErrInternalServerError.WithMessage("Device detection is not available"))
		}
		return response.JSON(map[string]any{
			"device_type":     device.DeviceType(),
			"device_model":    device.DeviceModel(),
			"os":              device.OS(),
			"browser":         device.BrowserName(),
			"browser_version": device.BrowserVer(),
			"is_mobile":       device.IsMobile(),
			"identifier":      device.GetShortIdentifier(),
		})
	}
}

// Cookie demos

func setCookieHandler(cookies *cookie.Manager) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		value := ctx.Request().URL.Query().Get("value")
		if value == "" {
			value = "hello"
		}
		// Essential: the demo cookie must survive without a consent grant.
		if err := cookies.Set(ctx.ResponseWriter(), ctx.Request(), demoCookieName, value, cookie.WithEssential()); err != nil {
			return response.Error(response.ErrInternalServerError.WithError(err))
		}
		return response.JSON(map[string]any{"cookie": demoCookieName, "value": value})
	}
}

func getCookieHandler(cookies *cookie.Manager) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		value, err := cookies.Get(ctx.Request(), demoCookieName)
		if err != nil {
			return response.JSON(map[string]any{"cookie": demoCookieName, "present": false})
		}
		return response.JSON(map[string]any{"cookie": demoCookieName, "present": true, "value": value})
	}
}

func clearCookieHandler(cookies *cookie.Manager) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		cookies.Delete(ctx.ResponseWriter(), demoCookieName)
		return response.JSON(map[string]any{"cookie": demoCookieName, "cleared": true})
	}
}

func consentHandler(cookies *cookie.Manager) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		w, r := ctx.ResponseWriter(), ctx.Request()

		switch r.URL.Query().Get("status") {
		case "all":
			if err := cookies.StoreConsent(w, r, cookie.ConsentAll); err != nil {
				return response.Error(response.ErrInternalServerError.WithError(err))
			}
			return response.JSON(map[string]any{"consent": "all"})
		case "essential":
			if err := cookies.StoreConsent(w, r, cookie.ConsentEssentialOnly); err != nil {
				return response.Error(response.ErrInternalServerError.WithError(err))
			}
			return response.JSON(map[string]any{"consent": "essential_only"})
		case "clear":
			cookies.ClearConsent(w)
			return response.JSON(map[string]any{"consent": "cleared"})
		}

		consent, err := cookies.GetConsent(r)
		if err != nil {
			return response.Error(response.ErrInternalServerError.WithError(err))
		}
		return response.JSON(map[string]any{
			"status":      consentLabel(consent.Status),
			"version":     consent.Version,
			"accepts_all": cookies.HasConsent(r),
		})
	}
}

func consentLabel(status cookie.ConsentStatus) string {
	switch status {
	case cookie.ConsentAll:
		return "all"
	case cookie.ConsentEssentialOnly:
		return "essential_only"
	default:
		return "unknown"
	}
}

// Session demos

func setSessionHandler() handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		sess, ok := ctx.Session()
		if !ok {
			return response.Error(response.ErrInternalServerError)
		}

		data := sess.Data
		if theme := ctx.Request().URL.Query().Get("theme"); theme != "" {
			data.Theme = theme
		}
		if lang := ctx.Request().URL.Query().Get("lang"); lang != "" {
			data.Language = lang
		}
		data.Views++
		sess.SetData(data)
		middleware.SetSession(ctx, sess)

		return response.JSON(map[string]any{
			"theme":    data.Theme,
			"language": data.Language,
			"views":    data.Views,
		})
	}
}

func getSessionHandler() handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		sess, ok := ctx.Session()
		if !ok {
			return response.Error(response.ErrInternalServerError)
		}
		return response.JSON(map[string]any{
			"session_id":    sess.ID,
			"authenticated": sess.IsAuthenticated(),
			"device":        sess.Device(),
			"theme":         sess.Data.Theme,
			"language":      sess.Data.Language,
			"views":         sess.Data.Views,
		})
	}
}

func setFlashHandler() handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		sess, ok := ctx.Session()
		if !ok {
			return response.Error(response.ErrInternalServerError)
		}

		message := ctx.Request().URL.Query().Get("message")
		if message == "" {
			message = "Settings saved"
		}

		data := sess.Data
		if data.Flash == nil {
			data.Flash = make(map[string]string)
		}
		data.Flash["notice"] = message
		sess.SetData(data)
		middleware.SetSession(ctx, sess)

		return response.JSON(map[string]any{"flash": message})
	}
}

// getFlashHandler consumes the flash message: the first read returns and
// clears it, subsequent reads find nothing.
func getFlashHandler() handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		sess, ok := ctx.Session()
		if !ok {
			return response.Error(response.ErrInternalServerError)
		}

		message, present := sess.Data.Flash["notice"]
		if present {
			data := sess.Data
			delete(data.Flash, "notice")
			sess.SetData(data)
			middleware.SetSession(ctx, sess)
		}

		return response.JSON(map[string]any{"flash": message, "present": present})
	}
}

func regenerateSessionHandler() handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		sess, ok := ctx.Session()
		if !ok {
			return response.Error(response.ErrInternalServerError)
		}
		if err := sess.Refresh(); err != nil {
			return response.Error(response.ErrInternalServerError.WithError(err))
		}
		middleware.SetSession(ctx, sess)

		return response.JSON(map[string]any{
			"session_id": sess.ID,
			"rotated":    true,
		})
	}
}

// Feature flag demo

func featureHandler() handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		flag, ok := ctx.Flag()
		if !ok {
			return response.Error(response.ErrInternalServerError.WithMessage("Feature gate is not available"))
		}
		return response.JSON(map[string]any{
			"flag":        flag.Name,
			"description": flag.Description,
			"rollout":     flag.Rollout,
			"enabled":     true,
		})
	}
}

// Echo demo

func echoHandler() handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		var body map[string]any
		if err := binder.JSON()(ctx.Request(), &body); err != nil {
			return response.Error(response.ErrBadRequest.WithMessage("Failed to parse request").WithError(err))
		}
		return response.JSON(map[string]any{"received": body})
	}
}

// Premium handlers

func profileHandler() handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		user, ok := ctx.User()
		if !ok {
			return response.Error(response.ErrUnauthorized)
		}
		return response.JSON(map[string]any{"user": user})
	}
}

func tierHandler(tier string) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		return response.JSON(map[string]any{
			"tier":    tier,
			"message": "Request allowed",
		})
	}
}

func adminHandler() handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		user, ok := ctx.User()
		if !ok {
			return response.Error(response.ErrUnauthorized)
		}
		perms, _ := middleware.GetPermissions(ctx)

		return response.JSON(map[string]any{
			"user":        user,
			"permissions": perms,
		})
	}
}

// API handlers

func statusHandler(started time.Time, version string) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		return response.JSON(map[string]any{
			"status":  "ok",
			"version": version,
			"uptime":  time.Since(started).Round(time.Second).String(),
		})
	}
}

func listUsersHandler(tokens middleware.StaticTokens) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		var q UsersQuery
		if err := ctx.Bind(&q); err != nil {
			return response.Error(response.ErrBadRequest.WithMessage("Failed to parse request").WithError(err))
		}

		users := make([]middleware.User, 0, len(tokens))
		for _, u := range tokens {
			if q.Role != "" && u.Role != q.Role {
				continue
			}
			users = append(users, u)
		}
		slices.SortFunc(users, func(a, b middleware.User) int {
			return cmp.Compare(a.ID, b.ID)
		})

		return response.JSON(map[string]any{"users": users, "total": len(users)})
	}
}

func getUserHandler(tokens middleware.StaticTokens) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		id := ctx.Param("id")
		for _, u := range tokens {
			if u.ID == id {
				return response.JSON(map[string]any{"user": u})
			}
		}
		return response.Error(response.ErrNotFound.WithDetails(map[string]any{"id": id}))
	}
}

func ingestHandler() handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		var req IngestRequest
		if err := ctx.Bind(&req); err != nil {
			if validator.IsValidationError(err) {
				return response.Error(response.ErrBadRequest.WithDetails(map[string]any{
					"errors": validator.ExtractValidationErrors(err),
				}))
			}
			return response.Error(response.ErrBadRequest.WithMessage("Failed to parse request").WithError(err))
		}

		return response.JSONWithStatus(map[string]any{"accepted": req}, http.StatusAccepted)
	}
}
