package middleware

import (
	"bytes"
	"encoding/json"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/httpkit/core/handler"
)

// TransformConfig configures the response transformation middleware.
type TransformConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Version reported in the _meta envelope (default: "1.0")
	Version string
	// HeaderName specifies the response header carrying the processing time (default: "X-Processing-Time")
	HeaderName string
}

// Transform creates a response transformation middleware with default configuration.
//
// The middleware times the downstream chain and reports the elapsed duration
// in the X-Processing-Time header. JSON object bodies additionally get a
// "_meta" envelope merged in:
//
//	{
//		"message": "hello",
//		"_meta": {
//			"requestId": "a81bc81b-dead-4e5d-abff-90865d1e13b1",
//			"processingTime": "1.27ms",
//			"timestamp": "2025-01-15T10:30:00Z",
//			"version": "1.0"
//		}
//	}
//
// The requestId field is populated from the RequestID middleware when it runs
// earlier in the chain, so register Transform after RequestID:
//
//	r.Use(middleware.RequestID[*MyContext]())
//	r.Use(middleware.Transform[*MyContext]())
//
// Non-JSON bodies and JSON arrays pass through untouched. Downstream errors
// are returned unchanged so the router's error handler renders them.
func Transform[C handler.Context]() handler.Middleware[C] {
	return TransformWithConfig[C](TransformConfig{})
}

// TransformWithConfig creates a response transformation middleware with custom configuration.
func TransformWithConfig[C handler.Context](cfg TransformConfig) handler.Middleware[C] {
	if cfg.Version == "" {
		cfg.Version = "1.0"
	}
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Processing-Time"
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			response := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				buf := newBufferedResponse(w)
				if err := response(buf, r); err != nil {
					return err
				}

				elapsed := time.Since(start)
				w.Header().Set(cfg.HeaderName, elapsed.String())

				if buf.isJSON() {
					requestID, _ := GetRequestID(ctx)
					meta := map[string]any{
						"requestId":      requestID,
						"processingTime": elapsed.String(),
						"timestamp":      time.Now().UTC().Format(time.RFC3339),
						"version":        cfg.Version,
					}
					if body, ok := injectJSONField(buf.body.Bytes(), "_meta", meta); ok {
						buf.setBody(body)
					}
				}

				return buf.flush()
			}
		}
	}
}

// bufferedResponse captures the downstream status code and body so middleware
// can rewrite JSON payloads before anything reaches the client. Header writes
// pass through to the underlying writer's header map; nothing is sent until
// flush.
type bufferedResponse struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func newBufferedResponse(w http.ResponseWriter) *bufferedResponse {
	return &bufferedResponse{ResponseWriter: w}
}

func (b *bufferedResponse) WriteHeader(status int) {
	if b.status == 0 {
		b.status = status
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

// isJSON reports whether the captured response declares a JSON content type.
func (b *bufferedResponse) isJSON() bool {
	mediaType, _, err := mime.ParseMediaType(b.Header().Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// setBody replaces the captured body, keeping an explicit Content-Length
// header consistent with the new size.
func (b *bufferedResponse) setBody(p []byte) {
	b.body.Reset()
	b.body.Write(p)
	if b.Header().Get("Content-Length") != "" {
		b.Header().Set("Content-Length", strconv.Itoa(len(p)))
	}
}

// flush sends the captured status and body to the client.
func (b *bufferedResponse) flush() error {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	b.ResponseWriter.WriteHeader(b.status)
	_, err := b.ResponseWriter.Write(b.body.Bytes())
	return err
}

// injectJSONField decodes body as a JSON object, sets key to value, and
// re-encodes. It reports false, returning the body unchanged, when the body
// is not a JSON object.
func injectJSONField(body []byte, key string, value any) ([]byte, bool) {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return body, false
	}

	payload[key] = value

	out, err := json.Marshal(payload)
	if err != nil {
		return body, false
	}
	return out, true
}
