package middleware

import (
	"net/http"

	"github.com/dmitrymomot/httpkit/core/handler"
	"github.com/dmitrymomot/httpkit/pkg/useragent"
)

// deviceContextKey is used as a key for storing the parsed user agent in request context.
type deviceContextKey struct{}

// DeviceDetectConfig configures the device detection middleware.
type DeviceDetectConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// SetHeaders determines whether to report the classification in the
	// X-Device-Type, X-Browser, and X-OS response headers
	SetHeaders bool
	// OptimizeMobile determines whether JSON object bodies served to mobile
	// clients are annotated with "mobileOptimized": true
	OptimizeMobile bool
}

// DeviceDetect creates a device detection middleware with default
// configuration: classification headers and mobile JSON annotation enabled.
//
// The middleware parses the User-Agent header once per request and stores the
// classification in the request context:
//
//	r.Get("/device", func(ctx *MyContext) handler.Response {
//		device, ok := middleware.GetDevice(ctx)
//		if !ok {
//			return response.Error(response.ErrInternalServerError)
//		}
//		return response.JSON(map[string]string{
//			"type":    device.DeviceType(),
//			"browser": device.BrowserName(),
//			"os":      device.OS(),
//		})
//	})
//
// An empty or unparseable User-Agent never fails the request; it degrades to
// the "unknown" classification.
func DeviceDetect[C handler.Context]() handler.Middleware[C] {
	return DeviceDetectWithConfig[C](DeviceDetectConfig{
		SetHeaders:     true,
		OptimizeMobile: true,
	})
}

// DeviceDetectWithConfig creates a device detection middleware with custom configuration.
func DeviceDetectWithConfig[C handler.Context](cfg DeviceDetectConfig) handler.Middleware[C] {
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			raw := ctx.Request().UserAgent()
			ua, err := useragent.Parse(raw)
			if err != nil {
				ua = useragent.New(raw, useragent.DeviceTypeUnknown, "", "unknown", "unknown", "")
			}

			ctx.SetValue(deviceContextKey{}, ua)

			response := next(ctx)

			if !cfg.SetHeaders && !cfg.OptimizeMobile {
				return response
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				if cfg.SetHeaders {
					w.Header().Set("X-Device-Type", ua.DeviceType())
					w.Header().Set("X-Browser", ua.BrowserName())
					w.Header().Set("X-OS", ua.OS())
				}

				if !cfg.OptimizeMobile || !ua.IsMobile() {
					return response(w, r)
				}

				buf := newBufferedResponse(w)
				if err := response(buf, r); err != nil {
					return err
				}

				if buf.isJSON() {
					if body, ok := injectJSONField(buf.body.Bytes(), "mobileOptimized", true); ok {
						buf.setBody(body)
					}
				}

				return buf.flush()
			}
		}
	}
}

// GetDevice retrieves the parsed user agent from the request context.
// Returns the classification and a boolean indicating whether it was found.
func GetDevice(ctx handler.Context) (useragent.UserAgent, bool) {
	ua, ok := ctx.Value(deviceContextKey{}).(useragent.UserAgent)
	return ua, ok
}
