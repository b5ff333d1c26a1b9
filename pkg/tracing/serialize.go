package tracing

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/ihoka/sentry-agents/pkg/config"
)

// truncationMarker is appended to values cut at the configured limit
const truncationMarker = "..."

// Serialize converts a value to a bounded-length string attribute.
// The second return value is false when the value is nil and the
// attribute should be omitted.
func Serialize(value interface{}, maxLength int) (string, bool) {
	if value == nil {
		return "", false
	}

	var s string
	switch v := value.(type) {
	case string:
		s = v
	default:
		// Maps and slices get a canonical JSON encoding; everything
		// else falls back to its default string representation
		if data, err := json.Marshal(value); err == nil && isStructured(value) {
			s = string(data)
		} else {
			s = fmt.Sprintf("%v", v)
		}
	}

	return Truncate(s, maxLength), true
}

// Truncate cuts s at maxLength characters and appends the truncation
// marker. Strings at or below the limit are returned verbatim. Lengths
// count runes, not bytes, so multibyte values are never split mid-rune.
func Truncate(s string, maxLength int) string {
	if maxLength <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	return string(runes[:maxLength]) + truncationMarker
}

func isStructured(value interface{}) bool {
	switch reflect.ValueOf(value).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return true
	}
	return false
}

// Filter applies the configured redaction hook to a copy of the
// attributes. The input map is never mutated, whatever the hook does to
// its argument. Without a hook the input is returned unchanged.
func Filter(attributes map[string]interface{}, cfg config.Config) map[string]interface{} {
	if cfg.BeforeSendAttributes == nil || attributes == nil {
		return attributes
	}

	copied := make(map[string]interface{}, len(attributes))
	for k, v := range attributes {
		copied[k] = v
	}

	return cfg.BeforeSendAttributes(copied)
}
