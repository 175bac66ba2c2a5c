package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ValidatorFunc builds the Rule for one field against one tag entry.
// Custom validators receive the field path, the field's value, and the
// colon-separated parameters from the tag.
type ValidatorFunc func(field string, value reflect.Value, params []string) Rule

var (
	registryMu sync.RWMutex
	registry   = map[string]ValidatorFunc{
		// String validators
		"required": requiredValidator,
		"min":      minValidator,
		"max":      maxValidator,
		"len":      lenValidator,
		"between":  betweenValidator,
		"email":    emailValidator,
		"url":      urlValidator,
		"phone":    phoneValidator,
		"alphanum": alphanumValidator,
		"alpha":    alphaValidator,
		"numeric":  numericValidator,
		"uuid":     uuidValidator,
		"in":       inValidator,
		"not_in":   notInValidator,
		"contains": containsValidator,
		"prefix":   prefixValidator,
		"suffix":   suffixValidator,
		"regex":    regexValidator,

		// Date validators
		"date":        dateValidator,
		"date_format": dateFormatValidator,
		"after":       afterValidator,
		"before":      beforeValidator,

		// Numeric validators
		"positive": positiveValidator,
		"negative": negativeValidator,
		"zero":     zeroValidator,
		"nonzero":  nonZeroValidator,
	}
)

// RegisterValidator makes fn available under the given tag name,
// replacing any builtin with that name.
func RegisterValidator(name string, fn ValidatorFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// ValidateStruct checks v's fields against their `validate` tags and
// returns the accumulated ValidationErrors, or nil when everything
// passes. Rules within a tag are separated by semicolons and parameters
// by colons, e.g. `validate:"required;between:3,30"`. Nested structs are
// descended into, with dotted field paths in the reported errors.
func ValidateStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer {
		return errors.New("validator: must pass a pointer to struct")
	}

	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return errors.New("validator: must pass a pointer to struct")
	}

	var errs ValidationErrors
	walkStruct(rv, "", &errs)

	if errs.IsEmpty() {
		return nil
	}
	return errs
}

func walkStruct(rv reflect.Value, prefix string, errs *ValidationErrors) {
	rt := rv.Type()

	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}

		structField := rt.Field(i)
		tag := structField.Tag.Get("validate")
		if tag == "-" {
			continue
		}

		fieldPath := structField.Name
		if prefix != "" {
			fieldPath = prefix + "." + structField.Name
		}

		// Untagged nested structs are still descended into.
		if field.Kind() == reflect.Struct && tag == "" {
			walkStruct(field, fieldPath, errs)
			continue
		}

		if field.Kind() == reflect.Pointer {
			if field.IsNil() {
				// A nil pointer can still fail "required".
				if tag != "" {
					applyTag(fieldPath, field, tag, errs)
				}
				continue
			}
			elem := field.Elem()
			if elem.Kind() == reflect.Struct && tag == "" {
				walkStruct(elem, fieldPath, errs)
			} else if tag != "" {
				applyTag(fieldPath, elem, tag, errs)
			}
			continue
		}

		if tag == "" {
			continue
		}

		applyTag(fieldPath, field, tag, errs)
	}
}

func applyTag(fieldPath string, field reflect.Value, tag string, errs *ValidationErrors) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, entry := range strings.Split(tag, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, paramStr, _ := strings.Cut(entry, ":")
		name = strings.TrimSpace(name)

		var params []string
		if paramStr = strings.TrimSpace(paramStr); paramStr != "" {
			params = strings.Split(paramStr, ",")
			for i := range params {
				params[i] = strings.TrimSpace(params[i])
			}
		}

		if fn, ok := registry[name]; ok {
			rule := fn(fieldPath, field, params)
			if !rule.Check() {
				errs.Add(rule.Error)
			}
		}
	}
}

// pass is the rule for type/parameter combinations a validator does not
// apply to; it never fails.
func pass() Rule {
	return Rule{Check: func() bool { return true }}
}

// makeRule assembles a Rule, folding the field name into the
// translation values alongside any rule-specific ones.
func makeRule(field, message, key string, values map[string]any, check func() bool) Rule {
	if values == nil {
		values = make(map[string]any, 1)
	}
	values["field"] = field

	return Rule{
		Check: check,
		Error: ValidationError{
			Field:             field,
			Message:           message,
			TranslationKey:    key,
			TranslationValues: values,
		},
	}
}

// Built-in validators

func requiredValidator(field string, value reflect.Value, params []string) Rule {
	return makeRule(field, "field is required", "validation.required", nil, func() bool {
		switch value.Kind() {
		case reflect.String:
			return strings.TrimSpace(value.String()) != ""
		case reflect.Slice, reflect.Map, reflect.Array:
			return value.Len() > 0
		case reflect.Pointer, reflect.Interface:
			return !value.IsNil()
		default:
			return !value.IsZero()
		}
	})
}

func minValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return pass()
	}

	switch value.Kind() {
	case reflect.String:
		min, _ := strconv.Atoi(params[0])
		return MinLenString(field, value.String(), min)
	case reflect.Slice, reflect.Array:
		min, _ := strconv.Atoi(params[0])
		return makeRule(field,
			fmt.Sprintf("must have at least %d items", min),
			"validation.min_items", map[string]any{"min": min},
			func() bool { return value.Len() >= min })
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		min, _ := strconv.ParseInt(params[0], 10, 64)
		return makeRule(field,
			fmt.Sprintf("must be at least %d", min),
			"validation.min", map[string]any{"min": min},
			func() bool { return value.Int() >= min })
	case reflect.Float32, reflect.Float64:
		min, _ := strconv.ParseFloat(params[0], 64)
		return makeRule(field,
			fmt.Sprintf("must be at least %f", min),
			"validation.min", map[string]any{"min": min},
			func() bool { return value.Float() >= min })
	default:
		return pass()
	}
}

func maxValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return pass()
	}

	switch value.Kind() {
	case reflect.String:
		max, _ := strconv.Atoi(params[0])
		return MaxLenString(field, value.String(), max)
	case reflect.Slice, reflect.Array:
		max, _ := strconv.Atoi(params[0])
		return makeRule(field,
			fmt.Sprintf("must have at most %d items", max),
			"validation.max_items", map[string]any{"max": max},
			func() bool { return value.Len() <= max })
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		max, _ := strconv.ParseInt(params[0], 10, 64)
		return makeRule(field,
			fmt.Sprintf("must be at most %d", max),
			"validation.max", map[string]any{"max": max},
			func() bool { return value.Int() <= max })
	case reflect.Float32, reflect.Float64:
		max, _ := strconv.ParseFloat(params[0], 64)
		return makeRule(field,
			fmt.Sprintf("must be at most %f", max),
			"validation.max", map[string]any{"max": max},
			func() bool { return value.Float() <= max })
	default:
		return pass()
	}
}

func lenValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 1 {
		return pass()
	}

	expected, _ := strconv.Atoi(params[0])

	switch value.Kind() {
	case reflect.String:
		return makeRule(field,
			fmt.Sprintf("must be exactly %d characters long", expected),
			"validation.exact_length", map[string]any{"len": expected},
			func() bool { return len(value.String()) == expected })
	case reflect.Slice, reflect.Array:
		return makeRule(field,
			fmt.Sprintf("must have exactly %d items", expected),
			"validation.exact_items", map[string]any{"len": expected},
			func() bool { return value.Len() == expected })
	default:
		return pass()
	}
}

func betweenValidator(field string, value reflect.Value, params []string) Rule {
	if len(params) < 2 {
		return pass()
	}

	switch value.Kind() {
	case reflect.String:
		min, _ := strconv.Atoi(params[0])
		max, _ := strconv.Atoi(params[1])
		return makeRule(field,
			fmt.Sprintf("must be between %d and %d characters long", min, max),
			"validation.between_length", map[string]any{"min": min, "max": max},
			func() bool {
				l := len(value.String())
				return l >= min && l <= max
			})
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		min, _ := strconv.ParseInt(params[0], 10, 64)
		max, _ := strconv.ParseInt(params[1], 10, 64)
		return makeRule(field,
			fmt.Sprintf("must be between %d and %d", min, max),
			"validation.between", map[string]any{"min": min, "max": max},
			func() bool {
				v := value.Int()
				return v >= min && v <= max
			})
	case reflect.Float32, reflect.Float64:
		min, _ := strconv.ParseFloat(params[0], 64)
		max, _ := strconv.ParseFloat(params[1], 64)
		return makeRule(field,
			fmt.Sprintf("must be between %f and %f", min, max),
			"validation.between", map[string]any{"min": min, "max": max},
			func() bool {
				v := value.Float()
				return v >= min && v <= max
			})
	default:
		return pass()
	}
}

func emailValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}
	return ValidEmail(field, value.String())
}

func urlValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}
	return ValidURL(field, value.String())
}

func phoneValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}
	return ValidPhone(field, value.String())
}

func alphanumValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}
	return ValidAlphanumeric(field, value.String())
}

func alphaValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}
	return ValidAlpha(field, value.String())
}

func numericValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}
	return ValidNumericString(field, value.String())
}

func uuidValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}

	version := 0
	if len(params) > 0 {
		version, _ = strconv.Atoi(params[0])
	}

	if version > 0 {
		return ValidUUIDVersionString(field, value.String(), version)
	}
	return ValidUUID(field, value.String())
}

func inValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}
	return InList(field, value.String(), params)
}

func notInValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}
	return NotInList(field, value.String(), params)
}

func containsValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String || len(params) < 1 {
		return pass()
	}
	substring := params[0]
	return makeRule(field,
		fmt.Sprintf("must contain '%s'", substring),
		"validation.contains", map[string]any{"substring": substring},
		func() bool { return strings.Contains(value.String(), substring) })
}

func prefixValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String || len(params) < 1 {
		return pass()
	}
	prefix := params[0]
	return makeRule(field,
		fmt.Sprintf("must start with '%s'", prefix),
		"validation.prefix", map[string]any{"prefix": prefix},
		func() bool { return strings.HasPrefix(value.String(), prefix) })
}

func suffixValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String || len(params) < 1 {
		return pass()
	}
	suffix := params[0]
	return makeRule(field,
		fmt.Sprintf("must end with '%s'", suffix),
		"validation.suffix", map[string]any{"suffix": suffix},
		func() bool { return strings.HasSuffix(value.String(), suffix) })
}

func regexValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String || len(params) < 1 {
		return pass()
	}
	pattern := params[0]
	description := "pattern"
	if len(params) > 1 {
		description = params[1]
	}
	return MatchesRegex(field, value.String(), pattern, description)
}

func dateValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}

	formats := []string{
		"2006-01-02",
		"2006-01-02 15:04:05",
		time.RFC3339,
	}

	return makeRule(field, "must be a valid date", "validation.date", nil,
		func() bool {
			for _, format := range formats {
				if _, err := time.Parse(format, value.String()); err == nil {
					return true
				}
			}
			return false
		})
}

func dateFormatValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String || len(params) < 1 {
		return pass()
	}

	format := params[0]
	return makeRule(field,
		fmt.Sprintf("must be a valid date in format %s", format),
		"validation.date_format", map[string]any{"format": format},
		func() bool {
			_, err := time.Parse(format, value.String())
			return err == nil
		})
}

// parseBoundary reads an after/before parameter as RFC3339, falling back
// to a bare date.
func parseBoundary(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse("2006-01-02", s)
	}
	return t, err
}

func afterValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String || len(params) < 1 {
		return pass()
	}

	afterStr := params[0]
	return makeRule(field,
		fmt.Sprintf("must be after %s", afterStr),
		"validation.after", map[string]any{"after": afterStr},
		func() bool {
			t, err := time.Parse(time.RFC3339, value.String())
			if err != nil {
				return false
			}
			after, err := parseBoundary(afterStr)
			if err != nil {
				return false
			}
			return t.After(after)
		})
}

func beforeValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String || len(params) < 1 {
		return pass()
	}

	beforeStr := params[0]
	return makeRule(field,
		fmt.Sprintf("must be before %s", beforeStr),
		"validation.before", map[string]any{"before": beforeStr},
		func() bool {
			t, err := time.Parse(time.RFC3339, value.String())
			if err != nil {
				return false
			}
			before, err := parseBoundary(beforeStr)
			if err != nil {
				return false
			}
			return t.Before(before)
		})
}

func positiveValidator(field string, value reflect.Value, params []string) Rule {
	switch value.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return makeRule(field, "must be positive", "validation.positive", nil,
			func() bool { return value.Int() > 0 })
	case reflect.Float32, reflect.Float64:
		return makeRule(field, "must be positive", "validation.positive", nil,
			func() bool { return value.Float() > 0 })
	default:
		return pass()
	}
}

func negativeValidator(field string, value reflect.Value, params []string) Rule {
	switch value.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return makeRule(field, "must be negative", "validation.negative", nil,
			func() bool { return value.Int() < 0 })
	case reflect.Float32, reflect.Float64:
		return makeRule(field, "must be negative", "validation.negative", nil,
			func() bool { return value.Float() < 0 })
	default:
		return pass()
	}
}

func zeroValidator(field string, value reflect.Value, params []string) Rule {
	return makeRule(field, "must be zero", "validation.zero", nil,
		func() bool { return value.IsZero() })
}

func nonZeroValidator(field string, value reflect.Value, params []string) Rule {
	return makeRule(field, "must not be zero", "validation.nonzero", nil,
		func() bool { return !value.IsZero() })
}
