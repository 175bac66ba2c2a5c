package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// bindToStruct is the reflection core shared by the source-specific binders.
// It copies string values into the fields of *v keyed by tagName, wrapping
// any failure in bindErr. Fields without a matching value keep their zero
// value; unexported fields are skipped.
func bindToStruct(v any, tagName string, values map[string][]string, bindErr error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", bindErr)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", bindErr)
	}

	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}

		sf := rt.Field(i)
		name, skip := paramName(sf, tagName)
		if skip {
			continue
		}

		vals := values[name]
		if len(vals) == 0 {
			continue
		}

		if err := setField(field, sf.Type, vals); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, sf.Name, err)
		}
	}

	return nil
}

// paramName resolves which parameter feeds a field. Tag options after the
// first comma (omitempty and friends) are irrelevant to binding.
func paramName(field reflect.StructField, tagName string) (name string, skip bool) {
	tag := field.Tag.Get(tagName)
	switch tag {
	case "":
		return strings.ToLower(field.Name), false
	case "-":
		return "", true
	}
	name, _, _ = strings.Cut(tag, ",")
	return name, false
}

func setField(field reflect.Value, typ reflect.Type, values []string) error {
	// Optional fields: allocate on first value.
	if typ.Kind() == reflect.Pointer {
		if field.IsNil() {
			field.Set(reflect.New(typ.Elem()))
		}
		return setField(field.Elem(), typ.Elem(), values)
	}

	if typ.Kind() == reflect.Slice {
		return setSlice(field, typ, values)
	}

	if len(values) == 0 {
		return nil
	}
	// Scalars take the first value; extras are ignored rather than rejected.
	value := values[0]

	switch typ.Kind() {
	case reflect.String:
		field.SetString(cleanString(value))

	case reflect.Bool:
		b, err := parseLenientBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", value)
		}
		field.SetFloat(n)

	default:
		return fmt.Errorf("unsupported type %s", typ.Kind())
	}

	return nil
}

// setSlice flattens repeated parameters and comma-separated singles into one
// element list, trimming whitespace around each element.
func setSlice(field reflect.Value, typ reflect.Type, values []string) error {
	var flat []string
	for _, v := range values {
		if strings.Contains(v, ",") {
			flat = append(flat, strings.Split(v, ",")...)
		} else {
			flat = append(flat, v)
		}
	}

	slice := reflect.MakeSlice(typ, len(flat), len(flat))
	for i, value := range flat {
		if err := setField(slice.Index(i), typ.Elem(), []string{strings.TrimSpace(value)}); err != nil {
			return err
		}
	}

	field.Set(slice)
	return nil
}

// parseLenientBool accepts strconv's forms plus the on/off and yes/no pairs
// that checkboxes and hand-typed URLs produce.
func parseLenientBool(value string) (bool, error) {
	if b, err := strconv.ParseBool(value); err == nil {
		return b, nil
	}
	switch strings.ToLower(value) {
	case "on", "yes", "1":
		return true, nil
	case "off", "no", "0", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid bool value %q", value)
}

// cleanString drops NUL bytes, CR/LF, and other non-printing control
// characters from bound input. Tabs and printable text, multibyte runes
// included, pass through unchanged.
func cleanString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r == '\t' || r >= ' ' || unicode.IsGraphic(r)) && utf8.ValidRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
