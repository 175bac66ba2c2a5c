package response

import (
	"net/http"

	"github.com/dmitrymomot/httpkit/core/handler"
)

// Render executes resp against the context's writer. A render error at this
// point means headers may already be out, so the fallback is a plain 500.
func Render(ctx handler.Context, resp handler.Response) {
	if err := resp(ctx.ResponseWriter(), ctx.Request()); err != nil {
		http.Error(ctx.ResponseWriter(), err.Error(), http.StatusInternalServerError)
	}
}

// raw is the shared writer behind the plain-body constructors. An empty
// contentType leaves the header untouched, a zero status means 200, and an
// empty body writes headers only.
func raw(contentType string, status int, content []byte) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		if len(content) > 0 {
			_, err := w.Write(content)
			return err
		}
		return nil
	}
}

// String renders content as text/plain with 200 OK.
func String(content string) handler.Response {
	return raw("text/plain; charset=utf-8", http.StatusOK, []byte(content))
}

// StringWithStatus renders content as text/plain with the given status.
func StringWithStatus(content string, status int) handler.Response {
	return raw("text/plain; charset=utf-8", status, []byte(content))
}

// HTML renders content as text/html with 200 OK.
func HTML(content string) handler.Response {
	return raw("text/html; charset=utf-8", http.StatusOK, []byte(content))
}

// HTMLWithStatus renders content as text/html with the given status.
func HTMLWithStatus(content string, status int) handler.Response {
	return raw("text/html; charset=utf-8", status, []byte(content))
}

// Bytes renders content under the given content type with 200 OK.
func Bytes(content []byte, contentType string) handler.Response {
	return raw(contentType, http.StatusOK, content)
}

// BytesWithStatus renders content under the given content type and status.
func BytesWithStatus(content []byte, contentType string, status int) handler.Response {
	return raw(contentType, status, content)
}

// NoContent renders an empty 204.
func NoContent() handler.Response {
	return raw("", http.StatusNoContent, nil)
}

// Status renders an empty response with just the status code.
func Status(code int) handler.Response {
	return raw("", code, nil)
}
