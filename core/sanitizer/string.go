package sanitizer

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
)

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// ToLower lowercases the string.
func ToLower(s string) string {
	return strings.ToLower(s)
}

// ToUpper uppercases the string.
func ToUpper(s string) string {
	return strings.ToUpper(s)
}

// ToTitle converts the string to title case.
func ToTitle(s string) string {
	return strings.ToTitle(s)
}

// caseJoin lowercases the input and rewrites every run of non-alphanumeric
// characters as a single separator, with no leading or trailing separator.
func caseJoin(s string, sep rune) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	pending := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			pending = false
			continue
		}
		if !pending {
			b.WriteRune(sep)
			pending = true
		}
	}

	return strings.Trim(b.String(), string(sep))
}

// ToKebabCase rewrites the string as a dash-separated identifier, safe
// for URLs and slugs.
func ToKebabCase(s string) string {
	return caseJoin(s, '-')
}

// ToSnakeCase rewrites the string as an underscore-separated identifier,
// the shape used for database column names.
func ToSnakeCase(s string) string {
	return caseJoin(s, '_')
}

// ToCamelCase joins words with the first word lowercase and every later
// word capitalized, the JavaScript property convention.
func ToCamelCase(s string) string {
	s = strings.TrimSpace(s)

	var b strings.Builder
	newWord := false
	first := true
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			switch {
			case first:
				b.WriteRune(unicode.ToLower(r))
				first = false
				newWord = false
			case newWord:
				b.WriteRune(unicode.ToUpper(r))
				newWord = false
			default:
				b.WriteRune(unicode.ToLower(r))
			}
			continue
		}
		if !first {
			newWord = true
		}
	}

	return b.String()
}

// TrimToLower trims whitespace and lowercases in one call.
func TrimToLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// TrimToUpper trims whitespace and uppercases in one call.
func TrimToUpper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// MaxLength truncates to at most maxLen runes. Counting runes rather
// than bytes keeps multibyte characters intact at the cut.
func MaxLength(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	return string(runes[:maxLen])
}

// RemoveExtraWhitespace collapses whitespace runs to single spaces and
// trims the ends.
func RemoveExtraWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// RemoveControlChars drops control characters except newline, carriage
// return, and tab.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// StripHTML removes tags and decodes entities, leaving the text content.
func StripHTML(s string) string {
	stripped := htmlTagRegex.ReplaceAllString(s, "")
	return html.UnescapeString(stripped)
}

// RemoveChars deletes every occurrence of each character in chars.
func RemoveChars(s string, chars string) string {
	for _, char := range chars {
		s = strings.ReplaceAll(s, string(char), "")
	}
	return s
}

// ReplaceChars substitutes every occurrence of each character in old
// with the new string.
func ReplaceChars(s string, old string, new string) string {
	for _, char := range old {
		s = strings.ReplaceAll(s, string(char), new)
	}
	return s
}

// KeepAlphanumeric keeps letters, digits, and spaces, dropping the rest.
func KeepAlphanumeric(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}

// KeepAlpha keeps letters and spaces, dropping the rest.
func KeepAlpha(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}

// KeepDigits keeps decimal digits, dropping the rest.
func KeepDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// SingleLine folds line breaks into spaces and normalizes the result, so
// multi-line input fits a form field or a log line.
func SingleLine(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return RemoveExtraWhitespace(s)
}
