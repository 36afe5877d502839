package result

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Well-known metadata keys read by sorting and faceting.
const (
	KeyDate     = "date"
	KeyStatus   = "status"
	KeyCategory = "category"
	KeyTags     = "tags"
)

// Metadata is the type-specific key/value projection of a result.
type Metadata map[string]any

// Date returns the record's primary date.
func (m Metadata) Date() (time.Time, bool) {
	t, ok := m[KeyDate].(time.Time)
	if !ok || t.IsZero() {
		return time.Time{}, false
	}
	return t, true
}

// Category returns the category label, if any.
func (m Metadata) Category() string {
	s, _ := m[KeyCategory].(string)
	return s
}

// Tags returns the tag list, if any.
func (m Metadata) Tags() []string {
	tags, _ := m[KeyTags].([]string)
	return tags
}

// Equals reports whether the value stored under key has the canonical string form value.
// A missing key never matches.
func (m Metadata) Equals(key, value string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	s, ok := Canonical(v)
	return ok && s == value
}

// Canonical renders a scalar metadata value as the string filters compare against.
// Lists and objects have no canonical form.
func Canonical(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case json.Number:
		return x.String(), true
	case time.Time:
		return x.UTC().Format(time.RFC3339), true
	case fmt.Stringer:
		return x.String(), true
	default:
		return "", false
	}
}
