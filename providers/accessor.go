package providers

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ValueByKey looks up a dot-separated path such as "data.0.id" in a decoded
// JSON document. A purely numeric segment indexes into a sequence (0-based);
// any other segment indexes into a map by key. A numeric segment applied to a
// map looks up the literal key.
//
// Missing keys, out-of-range indexes, non-container values and an empty path
// all yield (nil, false). ValueByKey never panics on malformed input.
//
// Example:
//
//	body := map[string]any{"data": []any{map[string]any{"id": "42"}}}
//	id, ok := ValueByKey(body, "data.0.id") // "42", true
func ValueByKey(data any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	current := data
	for _, segment := range strings.Split(path, ".") {
		next, ok := lookupSegment(current, segment)
		if !ok {
			return nil, false
		}
		current = next
	}

	return current, true
}

// StringByKey is ValueByKey followed by string conversion. A null leaf is
// treated as absent.
func StringByKey(data any, path string) (string, bool) {
	v, ok := ValueByKey(data, path)
	if !ok || v == nil {
		return "", false
	}
	return stringify(v), true
}

func lookupSegment(current any, segment string) (any, bool) {
	index, indexErr := strconv.Atoi(segment)
	isIndex := indexErr == nil && isDigits(segment)

	switch c := current.(type) {
	case map[string]any:
		v, ok := c[segment]
		return v, ok
	case []any:
		if !isIndex || index >= len(c) {
			return nil, false
		}
		return c[index], true
	case nil:
		return nil, false
	}

	// Typed containers (e.g. []map[string]any, map[string]string)
	rv := reflect.ValueOf(current)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		v := rv.MapIndex(reflect.ValueOf(segment).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil, false
		}
		return v.Interface(), true
	case reflect.Slice, reflect.Array:
		if !isIndex || index >= rv.Len() {
			return nil, false
		}
		return rv.Index(index).Interface(), true
	default:
		return nil, false
	}
}

// isDigits rejects signed forms like "+1" or "-0" that strconv.Atoi accepts.
func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// stringify renders a decoded JSON scalar as a string. Numbers are printed
// in decimal without exponent.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
