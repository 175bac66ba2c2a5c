package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Header lookup order. CDN headers win because they are set by infrastructure
// the application trusts; X-Forwarded-For is checked before X-Real-IP since
// it preserves the original client through proxy chains.
var cdnHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
}

// GetIP extracts the real client IP address from the request. Proxy headers
// are consulted in priority order (Cloudflare, DigitalOcean, X-Forwarded-For,
// X-Real-IP) before falling back to RemoteAddr. Invalid and unspecified
// addresses (0.0.0.0, ::) are skipped. The returned IP is normalized via
// net.IP.String; when nothing parses, the raw RemoteAddr is returned so the
// caller always has a non-empty key to work with.
func GetIP(r *http.Request) string {
	for _, header := range cdnHeaders {
		if ip := validIP(r.Header.Get(header)); ip != "" {
			return ip
		}
	}

	// X-Forwarded-For holds "client, proxy1, proxy2"; the leftmost valid
	// entry is the original client.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for entry := range strings.SplitSeq(xff, ",") {
			if ip := validIP(entry); ip != "" {
				return ip
			}
		}
	}

	if ip := validIP(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip := validIP(host); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// validIP parses and normalizes an IP string, rejecting unspecified
// addresses. Returns "" when the value is unusable.
func validIP(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	ip := net.ParseIP(value)
	if ip == nil || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}
