package sanitizer

import (
	"html"
	"path/filepath"
	"strings"
)

// EscapeHTML escapes special characters so the value renders as text, not markup.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// UnescapeHTML decodes HTML entities back to their original characters.
func UnescapeHTML(s string) string {
	return html.UnescapeString(s)
}

// PreventXSS neutralizes script injection by dropping javascript: and data:
// URI schemes and escaping the remaining markup.
func PreventXSS(s string) string {
	lower := strings.ToLower(s)
	for _, scheme := range []string{"javascript:", "data:", "vbscript:"} {
		for {
			idx := strings.Index(lower, scheme)
			if idx == -1 {
				break
			}
			s = s[:idx] + s[idx+len(scheme):]
			lower = strings.ToLower(s)
		}
	}
	return html.EscapeString(s)
}

// EscapeSQLString doubles single quotes for safe embedding in SQL string
// literals. Parameterized queries remain the first choice.
func EscapeSQLString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// SanitizeSQLIdentifier keeps only characters valid in SQL identifiers and
// prefixes a leading digit with an underscore.
func SanitizeSQLIdentifier(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}

	result := b.String()
	if result == "" {
		return result
	}
	if result[0] >= '0' && result[0] <= '9' {
		result = "_" + result
	}
	return result
}

// SanitizePath cleans the path and removes null bytes and parent directory
// references.
func SanitizePath(s string) string {
	s = RemoveNullBytes(strings.TrimSpace(s))
	s = PreventPathTraversal(s)
	if s == "" {
		return ""
	}
	return filepath.Clean(s)
}

// PreventPathTraversal strips parent directory sequences so the value cannot
// escape its base directory.
func PreventPathTraversal(s string) string {
	s = RemoveNullBytes(s)
	for strings.Contains(s, "../") || strings.Contains(s, `..\`) {
		s = strings.ReplaceAll(s, "../", "")
		s = strings.ReplaceAll(s, `..\`, "")
	}
	return s
}

// SanitizeShellArgument removes shell metacharacters and control characters.
// Passing arguments via exec.Command remains the first choice.
func SanitizeShellArgument(s string) string {
	s = RemoveControlChars(s)
	return RemoveChars(s, "`$&|;<>(){}[]!\\\"'")
}

// RemoveNullBytes strips NUL bytes that can truncate values in C-backed APIs.
func RemoveNullBytes(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

// SanitizeUserInput applies the baseline treatment for free-form user text:
// control characters removed, whitespace normalized, markup escaped.
func SanitizeUserInput(s string) string {
	s = RemoveControlChars(strings.TrimSpace(s))
	return EscapeHTML(RemoveExtraWhitespace(s))
}

// SanitizeSecureFilename produces a conservative lowercase filename with
// spaces replaced by underscores.
func SanitizeSecureFilename(s string) string {
	s = strings.ToLower(SanitizeFilename(s))
	return strings.ReplaceAll(s, " ", "_")
}

// PreventHeaderInjection strips CR, LF, and NUL so the value cannot smuggle
// extra HTTP headers.
func PreventHeaderInjection(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "")
	return RemoveNullBytes(s)
}
