package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrymomot/httpkit/core/handler"
	"github.com/dmitrymomot/httpkit/core/logger"
)

// LoggingConfig controls what the request logging middleware records.
type LoggingConfig struct {
	// Skip bypasses logging for matching requests.
	Skip func(ctx handler.Context) bool

	// Logger receives the log records; slog.Default() when nil.
	Logger *slog.Logger

	// LogLevel for successful requests; errors and slow requests escalate
	// on their own. Defaults to info.
	LogLevel slog.Level

	// LogRequest and LogResponse select the two log points. When both are
	// false the middleware turns both on, since an all-off logger is
	// never what the caller meant.
	LogRequest  bool
	LogResponse bool

	// LogRequestBody captures the request body into the log. Off by
	// default; bodies routinely carry credentials and PII.
	LogRequestBody bool

	// LogResponseBody is accepted for symmetry but bodies are not
	// captured on the response side.
	LogResponseBody bool

	// LogHeaders includes request and response headers, with sensitive
	// ones redacted.
	LogHeaders bool

	// MaxBodyLogSize caps logged bodies, 4KB by default.
	MaxBodyLogSize int

	// SensitiveHeaders are replaced with a redaction marker when header
	// logging is on. Defaults cover the usual credential carriers.
	SensitiveHeaders []string

	// SlowRequestThreshold escalates slower requests to warn level,
	// 5s by default.
	SlowRequestThreshold time.Duration

	// Component tags every record, "http" by default.
	Component string
}

// Logging records one "started" and one "completed" line per request at
// info level.
func Logging[C handler.Context]() handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{})
}

// LoggingWithLogger is Logging writing to the given logger.
func LoggingWithLogger[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{
		Logger: log,
	})
}

// LoggingWithConfig records request and response details per cfg. Request
// ID and client IP attrs are picked up from the RequestID and ClientIP
// middlewares when those ran earlier in the chain.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.LogLevel == 0 {
		cfg.LogLevel = slog.LevelInfo
	}

	if !cfg.LogRequest && !cfg.LogResponse {
		cfg.LogRequest = true
		cfg.LogResponse = true
	}

	if cfg.MaxBodyLogSize <= 0 {
		cfg.MaxBodyLogSize = 4 * 1024
	}

	if cfg.SensitiveHeaders == nil {
		cfg.SensitiveHeaders = []string{
			"Authorization",
			"Cookie",
			"Set-Cookie",
			"X-Api-Key",
			"X-Auth-Token",
			"X-Csrf-Token",
		}
	}

	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}

	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			req := ctx.Request()

			requestID, _ := GetRequestID(ctx)
			ip, ok := GetClientIP(ctx)
			if !ok {
				ip = req.RemoteAddr
			}

			attrs := []slog.Attr{
				logger.Component(cfg.Component),
				logger.Event("request"),
				logger.Method(req.Method),
				logger.Path(req.URL.Path),
				logger.ClientIP(ip),
			}

			if requestID != "" {
				attrs = append(attrs, logger.RequestID(requestID))
			}

			if req.URL.RawQuery != "" {
				attrs = append(attrs, slog.String("query", req.URL.RawQuery))
			}

			if cfg.LogRequestBody && req.Body != nil {
				// Read the body for logging and hand the handler a
				// replacement reader over the same bytes.
				body, _ := io.ReadAll(req.Body)
				req.Body = io.NopCloser(bytes.NewBuffer(body))

				if len(body) > 0 {
					logged := body
					if len(logged) > cfg.MaxBodyLogSize {
						logged = logged[:cfg.MaxBodyLogSize]
						attrs = append(attrs, slog.Bool("request_body_truncated", true))
					}
					attrs = append(attrs, slog.String("request_body", string(logged)))
				}
			}

			if cfg.LogHeaders {
				if headers := redactHeaders(req.Header, cfg.SensitiveHeaders); len(headers) > 0 {
					attrs = append(attrs, slog.Any("request_headers", headers))
				}
			}

			if cfg.LogRequest {
				cfg.Logger.LogAttrs(req.Context(), cfg.LogLevel, "HTTP request started", attrs...)
			}

			response := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				wrapped := &responseWriter{
					ResponseWriter: w,
					statusCode:     http.StatusOK,
				}
				err := response(wrapped, r)

				duration := time.Since(start)

				respAttrs := []slog.Attr{
					logger.Component(cfg.Component),
					logger.Event("response"),
					logger.Method(req.Method),
					logger.Path(req.URL.Path),
					logger.StatusCode(wrapped.statusCode),
					logger.BytesOut(int64(wrapped.size)),
					logger.Duration(duration),
				}

				if requestID != "" {
					respAttrs = append(respAttrs, logger.RequestID(requestID))
				}

				if cfg.LogHeaders && wrapped.headerWritten {
					if headers := redactHeaders(w.Header(), cfg.SensitiveHeaders); len(headers) > 0 {
						respAttrs = append(respAttrs, slog.Any("response_headers", headers))
					}
				}

				// Server errors log at error level with the handler error
				// attached, client errors at warn, and anything over the
				// slow threshold at warn with a marker attr.
				level := cfg.LogLevel
				if wrapped.statusCode >= 500 {
					level = slog.LevelError
					respAttrs = append(respAttrs, logger.Error(err))
				} else if wrapped.statusCode >= 400 {
					level = slog.LevelWarn
				} else if duration > cfg.SlowRequestThreshold {
					level = slog.LevelWarn
					respAttrs = append(respAttrs, slog.Bool("slow_request", true))
				}

				if cfg.LogResponse {
					cfg.Logger.LogAttrs(req.Context(), level, "HTTP request completed", respAttrs...)
				}

				return err
			}
		}
	}
}

// redactHeaders flattens a header map for logging, substituting the values
// of sensitive headers. Single-valued headers log as plain strings.
func redactHeaders(h http.Header, sensitive []string) map[string]any {
	out := make(map[string]any, len(h))
	for key, values := range h {
		switch {
		case slices.Contains(sensitive, key):
			out[key] = "[REDACTED]"
		case len(values) == 1:
			out[key] = values[0]
		default:
			out[key] = values
		}
	}
	return out
}

// responseWriter records status and byte count as the response is sent.
type responseWriter struct {
	http.ResponseWriter
	statusCode    int
	size          int
	headerWritten bool
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.headerWritten = true
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.headerWritten {
		rw.WriteHeader(http.StatusOK)
	}
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}
