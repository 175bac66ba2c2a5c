package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"sort"
	"strings"

	"github.com/dmitrymomot/httpkit/pkg/clientip"
)

const (
	fingerprintVersion = "v1:"
	// 128 bits of the SHA-256 output is plenty for device correlation
	// and halves the storage of the full digest.
	fingerprintHashLen = 16
	// "v1:" plus the hex encoding of fingerprintHashLen bytes.
	fingerprintTotalLen = 35
)

// stableHeaders is the presence whitelist for the header-set component.
// Volatile headers (cookies, cache directives with values) would churn
// the fingerprint; these identify the client type and little else.
var stableHeaders = map[string]struct{}{
	"user-agent":                {},
	"accept":                    {},
	"accept-language":           {},
	"accept-encoding":           {},
	"connection":                {},
	"upgrade-insecure-requests": {},
	"sec-fetch-dest":            {},
	"sec-fetch-mode":            {},
	"sec-fetch-site":            {},
	"cache-control":             {},
}

// Generate hashes stable request characteristics into a "v1:<hex>"
// device fingerprint. The default mix is User-Agent, the Accept family,
// and the set of headers present; the client IP stays out unless WithIP
// is given, because mobile networks and VPNs rotate it constantly.
//
//	fp := fingerprint.Generate(r)
//	fp := fingerprint.Generate(r, fingerprint.WithIP())
func Generate(r *http.Request, opts ...Option) string {
	o := applyOptions(opts...)

	var components []string

	if o.includeUserAgent {
		components = append(components, r.UserAgent())
	}

	if o.includeAcceptHeaders {
		components = append(components,
			r.Header.Get("Accept-Language"),
			r.Header.Get("Accept-Encoding"),
			r.Header.Get("Accept"),
		)
	}

	if o.includeIP {
		components = append(components, clientip.GetIP(r))
	}

	if o.includeHeaderSet {
		components = append(components, headerPresence(r))
	}

	// Drop empty components so a missing header hashes the same as a
	// disabled option, then join with a delimiter so ["ab","c"] and
	// ["a","bc"] cannot collide.
	filtered := make([]string, 0, len(components))
	for _, comp := range components {
		if comp != "" {
			filtered = append(filtered, comp)
		}
	}

	hash := sha256.Sum256([]byte(strings.Join(filtered, "|")))
	return fingerprintVersion + hex.EncodeToString(hash[:fingerprintHashLen])
}

// Validate recomputes the request's fingerprint and compares it against
// a stored one. It returns nil on match, ErrMismatch on a clean
// mismatch, and ErrInvalidFingerprint when the stored value is not in
// Generate's format.
//
// The opts must be the ones the stored fingerprint was generated with;
// a value from Strict only validates through ValidateStrict or
// Validate(..., WithIP()).
func Validate(r *http.Request, sessionFingerprint string, opts ...Option) error {
	if !strings.HasPrefix(sessionFingerprint, fingerprintVersion) || len(sessionFingerprint) != fingerprintTotalLen {
		return ErrInvalidFingerprint
	}

	if Generate(r, opts...) == sessionFingerprint {
		return nil
	}

	return ErrMismatch
}

// headerPresence hashes which whitelisted headers the client sent, not
// their values. Browsers differ in the sets they emit (Chrome adds
// Sec-Fetch-*, API clients send almost nothing), which makes presence
// alone a usable signal.
func headerPresence(r *http.Request) string {
	var names []string
	for name := range r.Header {
		lower := strings.ToLower(name)
		if _, ok := stableHeaders[lower]; ok {
			names = append(names, lower)
		}
	}

	sort.Strings(names)
	return strings.Join(names, ",")
}

// Strict fingerprints with the client IP included. IP changes then
// invalidate the session, at the cost of false positives for mobile and
// VPN users.
func Strict(r *http.Request) string {
	return Generate(r, WithIP())
}

// Cookie fingerprints with the defaults, the right choice for
// cookie-backed web sessions.
func Cookie(r *http.Request) string {
	return Generate(r)
}

// ValidateStrict checks a fingerprint produced by Strict.
func ValidateStrict(r *http.Request, sessionFingerprint string) error {
	return Validate(r, sessionFingerprint, WithIP())
}

// ValidateCookie checks a fingerprint produced by Cookie.
func ValidateCookie(r *http.Request, sessionFingerprint string) error {
	return Validate(r, sessionFingerprint)
}
