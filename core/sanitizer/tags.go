package sanitizer

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]func(string) string{
		// String sanitizers
		"trim":        Trim,
		"lower":       ToLower,
		"upper":       ToUpper,
		"title":       ToTitle,
		"trim_lower":  TrimToLower,
		"trim_upper":  TrimToUpper,
		"kebab":       ToKebabCase,
		"snake":       ToSnakeCase,
		"camel":       ToCamelCase,
		"single_line": SingleLine,
		"no_spaces":   RemoveExtraWhitespace,
		"strip_html":  StripHTML,
		"alphanum":    KeepAlphanumeric,
		"alpha":       KeepAlpha,
		"digits":      KeepDigits,

		// Format sanitizers
		"email":       NormalizeEmail,
		"phone":       NormalizePhone,
		"url":         NormalizeURL,
		"domain":      ExtractDomain,
		"credit_card": NormalizeCreditCard,
		"ssn":         NormalizeSSN,
		"postal_code": NormalizePostalCode,
		"filename":    SanitizeFilename,
		"whitespace":  NormalizeWhitespace,

		// Security sanitizers
		"escape_html":     EscapeHTML,
		"unescape_html":   UnescapeHTML,
		"xss":             PreventXSS,
		"sql_string":      EscapeSQLString,
		"sql_identifier":  SanitizeSQLIdentifier,
		"path":            SanitizePath,
		"path_traversal":  PreventPathTraversal,
		"shell_arg":       SanitizeShellArgument,
		"no_null":         RemoveNullBytes,
		"no_control":      RemoveControlChars,
		"user_input":      SanitizeUserInput,
		"secure_filename": SanitizeSecureFilename,
		"header":          PreventHeaderInjection,

		// Composites for the usual form fields
		"username": func(s string) string {
			return KeepAlphanumeric(ToLower(Trim(s)))
		},
		"slug": func(s string) string {
			return ToKebabCase(Trim(s))
		},
		"name": func(s string) string {
			return ToTitle(RemoveExtraWhitespace(Trim(s)))
		},
		"text": func(s string) string {
			return RemoveExtraWhitespace(Trim(s))
		},
		"safe_text": func(s string) string {
			return EscapeHTML(RemoveExtraWhitespace(Trim(s)))
		},
		"safe_html": func(s string) string {
			return PreventXSS(Trim(s))
		},
	}
)

// RegisterSanitizer makes fn available under the given tag name,
// replacing any builtin with that name.
func RegisterSanitizer(name string, fn func(string) string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// SanitizeStruct rewrites v's string fields in place according to their
// `sanitize` tags. Tags list registry names left to right, so
// `sanitize:"trim,lower"` trims first. A tag of "-" skips the field;
// nested structs are descended into whether tagged or not.
func SanitizeStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer {
		return errors.New("sanitizer: must pass a pointer to struct")
	}

	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return errors.New("sanitizer: must pass a pointer to struct")
	}

	return sanitizeFields(rv)
}

func sanitizeFields(rv reflect.Value) error {
	rt := rv.Type()

	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}

		tag := rt.Field(i).Tag.Get("sanitize")
		if tag == "-" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			if tag == "" {
				continue
			}
			if err := sanitizeString(field, tag); err != nil {
				return err
			}

		case reflect.Pointer:
			if field.IsNil() {
				continue
			}
			elem := field.Elem()
			switch elem.Kind() {
			case reflect.String:
				if tag != "" {
					if err := sanitizeString(elem, tag); err != nil {
						return err
					}
				}
			case reflect.Struct:
				if err := sanitizeFields(elem); err != nil {
					return err
				}
			}

		case reflect.Struct:
			if err := sanitizeFields(field); err != nil {
				return err
			}

		case reflect.Slice:
			if tag == "" || field.Type().Elem().Kind() != reflect.String {
				continue
			}
			for j := 0; j < field.Len(); j++ {
				if err := sanitizeString(field.Index(j), tag); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// sanitizeString runs the tag's pipeline over a settable string value.
func sanitizeString(field reflect.Value, tag string) error {
	sanitized, err := applySanitizers(field.String(), tag)
	if err != nil {
		return err
	}
	field.SetString(sanitized)
	return nil
}

func applySanitizers(value string, tag string) (string, error) {
	result := value

	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range strings.Split(tag, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		// "max:N" truncates instead of naming a registry entry.
		if arg, ok := strings.CutPrefix(name, "max:"); ok {
			if maxLen, err := strconv.Atoi(arg); err == nil && maxLen > 0 {
				result = MaxLength(result, maxLen)
			}
			continue
		}

		if fn, ok := registry[name]; ok {
			result = fn(result)
		}
	}

	return result, nil
}
