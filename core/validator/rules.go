package validator

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Rule pairs a check with the error to report when the check fails.
// Custom validators registered via RegisterValidator return Rules too.
type Rule struct {
	Check func() bool
	Error ValidationError
}

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex    = regexp.MustCompile(`^\+?[1-9][0-9]{7,14}$`)
	alphanumRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	alphaRegex    = regexp.MustCompile(`^[a-zA-Z]+$`)
	numericRegex  = regexp.MustCompile(`^[0-9]+$`)
)

// MinLenString checks that value has at least min characters (by rune count).
func MinLenString(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) >= min
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be at least %d characters", min),
			TranslationKey: "validation.min_length",
			TranslationValues: map[string]any{
				"field": field,
				"min":   min,
			},
		},
	}
}

// MaxLenString checks that value has at most max characters (by rune count).
func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) <= max
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be at most %d characters", max),
			TranslationKey: "validation.max_length",
			TranslationValues: map[string]any{
				"field": field,
				"max":   max,
			},
		},
	}
}

// ValidEmail checks that value looks like an email address.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return emailRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid email address",
			TranslationKey: "validation.email",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ValidURL checks that value is an absolute URL with a scheme and host.
func ValidURL(field, value string) Rule {
	return Rule{
		Check: func() bool {
			u, err := url.Parse(value)
			if err != nil {
				return false
			}
			return u.Scheme != "" && u.Host != ""
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid URL",
			TranslationKey: "validation.url",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ValidPhone checks that value is an E.164-style phone number
// (optional leading +, 8 to 15 digits, no leading zero).
func ValidPhone(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return phoneRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid phone number",
			TranslationKey: "validation.phone",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ValidAlphanumeric checks that value contains only letters and digits.
func ValidAlphanumeric(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return alphanumRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must contain only letters and numbers",
			TranslationKey: "validation.alphanum",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ValidAlpha checks that value contains only letters.
func ValidAlpha(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return alphaRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must contain only letters",
			TranslationKey: "validation.alpha",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ValidNumericString checks that value contains only digits.
func ValidNumericString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return numericRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must contain only numbers",
			TranslationKey: "validation.numeric",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ValidUUID checks that value parses as a UUID of any version.
func ValidUUID(field, value string) Rule {
	return Rule{
		Check: func() bool {
			_, err := uuid.Parse(value)
			return err == nil
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid UUID",
			TranslationKey: "validation.uuid",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ValidUUIDVersionString checks that value is a UUID of the given version.
func ValidUUIDVersionString(field, value string, version int) Rule {
	return Rule{
		Check: func() bool {
			u, err := uuid.Parse(value)
			if err != nil {
				return false
			}
			return int(u.Version()) == version
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be a valid UUIDv%d", version),
			TranslationKey: "validation.uuid_version",
			TranslationValues: map[string]any{
				"field":   field,
				"version": version,
			},
		},
	}
}

// InList checks that value is one of the allowed values.
func InList(field, value string, allowed []string) Rule {
	return Rule{
		Check: func() bool {
			return slices.Contains(allowed, value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be one of: %v", allowed),
			TranslationKey: "validation.in",
			TranslationValues: map[string]any{
				"field":   field,
				"allowed": allowed,
			},
		},
	}
}

// NotInList checks that value is none of the forbidden values.
func NotInList(field, value string, forbidden []string) Rule {
	return Rule{
		Check: func() bool {
			return !slices.Contains(forbidden, value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must not be one of: %v", forbidden),
			TranslationKey: "validation.not_in",
			TranslationValues: map[string]any{
				"field":     field,
				"forbidden": forbidden,
			},
		},
	}
}

// MatchesRegex checks value against pattern. The description names the
// expected format in the error message. An invalid pattern fails the check.
func MatchesRegex(field, value, pattern, description string) Rule {
	return Rule{
		Check: func() bool {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return false
			}
			return re.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must match %s", description),
			TranslationKey: "validation.regex",
			TranslationValues: map[string]any{
				"field":   field,
				"pattern": description,
			},
		},
	}
}
