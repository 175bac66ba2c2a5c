package middleware

import (
	"fmt"
	"io"
	"mime"
	"strconv"

	"github.com/dmitrymomot/httpkit/core/handler"
	"github.com/dmitrymomot/httpkit/core/response"
)

// BodyLimitConfig configures request body size enforcement.
type BodyLimitConfig struct {
	// Skip bypasses the limit for matching requests.
	Skip func(ctx handler.Context) bool

	// MaxSize is the byte limit, 4MB by default.
	MaxSize int64

	// ContentTypeLimit overrides MaxSize per media type, for example a
	// tight JSON limit alongside a generous multipart one.
	ContentTypeLimit map[string]int64

	// ErrorHandler shapes the 413 response. contentLength is zero when
	// the request did not declare one.
	ErrorHandler func(ctx handler.Context, contentLength int64, maxSize int64) handler.Response

	// DisableContentLengthCheck skips the declared-length rejection and
	// only enforces the limit while the body is being read.
	DisableContentLengthCheck bool
}

// BodyLimit caps request bodies at 4MB.
func BodyLimit[C handler.Context]() handler.Middleware[C] {
	return BodyLimitWithConfig[C](BodyLimitConfig{})
}

// BodyLimitWithSize caps request bodies at maxSize bytes.
func BodyLimitWithSize[C handler.Context](maxSize int64) handler.Middleware[C] {
	return BodyLimitWithConfig[C](BodyLimitConfig{
		MaxSize: maxSize,
	})
}

// BodyLimitWithConfig rejects oversized request bodies. Requests declaring
// an excessive Content-Length are refused before the handler runs; bodies
// without a declared length are cut off mid-read once they cross the
// limit.
func BodyLimitWithConfig[C handler.Context](cfg BodyLimitConfig) handler.Middleware[C] {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 4 * MB
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultBodyLimitError
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			req := ctx.Request()

			maxSize := cfg.MaxSize
			if cfg.ContentTypeLimit != nil {
				mediaType, _, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
				if err == nil {
					if limit, ok := cfg.ContentTypeLimit[mediaType]; ok {
						maxSize = limit
					}
				}
			}

			if !cfg.DisableContentLengthCheck {
				if contentLengthStr := req.Header.Get("Content-Length"); contentLengthStr != "" {
					contentLength, err := strconv.ParseInt(contentLengthStr, 10, 64)
					if err == nil && contentLength > maxSize {
						return cfg.ErrorHandler(ctx, contentLength, maxSize)
					}
				}
			}

			// Clients can lie about Content-Length or use chunked
			// encoding, so the body reader enforces the limit too.
			if req.Body != nil {
				req.Body = &limitedReader{
					reader:  req.Body,
					limit:   maxSize,
					ctx:     ctx,
					handler: cfg.ErrorHandler,
				}
			}

			return next(ctx)
		}
	}
}

func defaultBodyLimitError(ctx handler.Context, contentLength int64, maxSize int64) handler.Response {
	message := fmt.Sprintf("Request body too large. Maximum allowed: %s", formatBytes(maxSize))
	details := map[string]any{
		"limit": maxSize,
	}
	if contentLength > 0 {
		message = fmt.Sprintf("Request body too large. Size: %s, Maximum allowed: %s",
			formatBytes(contentLength), formatBytes(maxSize))
		details["size"] = contentLength
	}
	return response.Error(response.ErrRequestEntityTooLarge.WithMessage(message).WithDetails(details))
}

// limitedReader fails reads once the running total passes the limit.
type limitedReader struct {
	reader  io.ReadCloser
	limit   int64
	read    int64
	ctx     handler.Context
	handler func(handler.Context, int64, int64) handler.Response
}

func (lr *limitedReader) Read(p []byte) (int, error) {
	if lr.read >= lr.limit {
		return 0, fmt.Errorf("request body size exceeds limit of %d bytes (read: %d)", lr.limit, lr.read)
	}

	// Never read past the limit in one call.
	remaining := lr.limit - lr.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err := lr.reader.Read(p)
	lr.read += int64(n)

	if lr.read > lr.limit {
		return n, fmt.Errorf("request body size exceeds limit of %d bytes (read: %d)", lr.limit, lr.read)
	}

	return n, err
}

func (lr *limitedReader) Close() error {
	return lr.reader.Close()
}

// formatBytes renders a byte count for error messages.
func formatBytes(bytes int64) string {
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}

// Size constants for limit configuration.
const (
	KB int64 = 1024
	MB       = 1024 * KB
	GB       = 1024 * MB
)
