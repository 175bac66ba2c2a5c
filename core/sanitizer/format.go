package sanitizer

import (
	"net/url"
	"strings"
)

// NormalizeEmail lowercases and trims the address for consistent storage and lookups.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizePhone keeps the leading plus and digits, dropping separators and formatting.
func NormalizePhone(s string) string {
	s = strings.TrimSpace(s)
	hasPlus := strings.HasPrefix(s, "+")

	digits := KeepDigits(s)
	if digits == "" {
		return ""
	}
	if hasPlus {
		return "+" + digits
	}
	return digits
}

// NormalizeURL trims the value, defaults the scheme to https, and lowercases
// the scheme and host. Values that do not parse are returned trimmed.
func NormalizeURL(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if !strings.Contains(s, "://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return strings.TrimSpace(s)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	return u.String()
}

// ExtractDomain returns the lowercased host of a URL or bare domain,
// without port or www prefix.
func ExtractDomain(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if !strings.Contains(s, "://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// NormalizeCreditCard keeps only the digits for storage and validation.
func NormalizeCreditCard(s string) string {
	return KeepDigits(s)
}

// NormalizeSSN keeps only the digits, dropping dashes and spaces.
func NormalizeSSN(s string) string {
	return KeepDigits(s)
}

// NormalizePostalCode uppercases the code and collapses internal whitespace
// to a single space.
func NormalizePostalCode(s string) string {
	return strings.ToUpper(RemoveExtraWhitespace(s))
}

// SanitizeFilename replaces path separators and filesystem-reserved characters
// with underscores and strips control characters and surrounding dots.
func SanitizeFilename(s string) string {
	s = RemoveControlChars(strings.TrimSpace(s))
	s = ReplaceChars(s, `/\:*?"<>|`, "_")
	return strings.Trim(s, ". ")
}

// NormalizeWhitespace collapses all whitespace runs, including tabs and line
// breaks, into single spaces.
func NormalizeWhitespace(s string) string {
	return RemoveExtraWhitespace(SingleLine(s))
}
