package binder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
)

// DefaultMaxJSONSize caps how much of a request body the JSON binder will
// read before giving up.
const DefaultMaxJSONSize = 1 << 20 // 1 MB

// JSON returns a binder that decodes an application/json body into v.
//
// Decoding is strict: the Content-Type must be application/json (parameters
// such as charset are ignored), unknown fields are rejected, nothing may
// follow the top-level value, and bodies over DefaultMaxJSONSize fail.
// String fields are cleaned of NUL bytes and control characters after
// decoding.
//
//	var req IngestRequest
//	if err := binder.JSON()(ctx.Request(), &req); err != nil {
//		// errors.Is against the package sentinels
//	}
func JSON() Binder {
	return func(r *http.Request, v any) error {
		// A cancelled request is not worth decoding.
		if ctx := r.Context(); ctx != nil {
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: context timeout", ErrFailedToParseJSON)
			default:
			}
		}

		if err := requireJSONContentType(r); err != nil {
			return err
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, DefaultMaxJSONSize+1))
		if err != nil {
			return fmt.Errorf("%w: failed to read request body: %v", ErrFailedToParseJSON, err)
		}
		if len(body) > DefaultMaxJSONSize {
			return fmt.Errorf("%w: request body too large (max %d bytes)", ErrFailedToParseJSON, DefaultMaxJSONSize)
		}

		dec := json.NewDecoder(bytes.NewReader(body))
		dec.DisallowUnknownFields()

		if err := dec.Decode(v); err != nil {
			if err == io.EOF {
				return fmt.Errorf("%w: empty body", ErrFailedToParseJSON)
			}
			return fmt.Errorf("%w: %v", ErrFailedToParseJSON, err)
		}

		// Exactly one top-level value. A second decode must hit EOF.
		var trailing json.RawMessage
		if err := dec.Decode(&trailing); err != io.EOF {
			return fmt.Errorf("%w: unexpected data after JSON object", ErrFailedToParseJSON)
		}

		if err := cleanBoundStrings(v); err != nil {
			return fmt.Errorf("%w: failed to sanitize input: %v", ErrFailedToParseJSON, err)
		}

		return nil
	}
}

func requireJSONContentType(r *http.Request) error {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return fmt.Errorf("%w: missing content-type header, expected application/json", ErrMissingContentType)
	}

	mediaType := contentType
	if idx := strings.Index(contentType, ";"); idx != -1 {
		mediaType = strings.TrimSpace(contentType[:idx])
	}
	if mediaType != "application/json" {
		return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, mediaType)
	}
	return nil
}

// cleanBoundStrings walks the decoded value and scrubs every settable
// string field in place. Map values and strings boxed in interfaces are not
// addressable through reflection, so they pass through untouched.
func cleanBoundStrings(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil
	}
	cleanValue(rv.Elem())
	return nil
}

func cleanValue(rv reflect.Value) {
	switch rv.Kind() {
	case reflect.String:
		if rv.CanSet() {
			rv.SetString(cleanString(rv.String()))
		}

	case reflect.Struct:
		for i := range rv.NumField() {
			if f := rv.Field(i); f.CanSet() {
				cleanValue(f)
			}
		}

	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			cleanValue(rv.Index(i))
		}

	case reflect.Pointer, reflect.Interface:
		if !rv.IsNil() {
			cleanValue(rv.Elem())
		}
	}
}
