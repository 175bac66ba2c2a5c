package response

import (
	"net/http"

	"github.com/dmitrymomot/httpkit/core/handler"
)

func redirect(url string, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		http.Redirect(w, r, url, status)
		return nil
	}
}

// Redirect renders a 302 Found, the everyday temporary redirect.
func Redirect(url string) handler.Response {
	return redirect(url, http.StatusFound)
}

// RedirectPermanent renders a 301 Moved Permanently.
func RedirectPermanent(url string) handler.Response {
	return redirect(url, http.StatusMovedPermanently)
}

// RedirectSeeOther renders a 303 See Other, the POST-redirect-GET status.
func RedirectSeeOther(url string) handler.Response {
	return redirect(url, http.StatusSeeOther)
}

// RedirectTemporary renders a 307 Temporary Redirect, which unlike 302
// obliges clients to keep the request method.
func RedirectTemporary(url string) handler.Response {
	return redirect(url, http.StatusTemporaryRedirect)
}

// RedirectPermanentPreserve renders a 308 Permanent Redirect, the
// method-preserving counterpart of 301.
func RedirectPermanentPreserve(url string) handler.Response {
	return redirect(url, http.StatusPermanentRedirect)
}

// RedirectWithStatus renders a redirect with a caller-chosen status.
// Values outside the 3xx range fall back to 302.
func RedirectWithStatus(url string, status int) handler.Response {
	if status < 300 || status >= 400 {
		status = http.StatusFound
	}
	return redirect(url, status)
}
