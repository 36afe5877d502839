package record

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Raw is a provider record as decoded from its source: a JSON-like object.
// Accessors never fail; missing or mistyped fields read as zero values.
type Raw map[string]any

// dateLayouts are the timestamp shapes accepted from providers.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// String returns the field as text.
func (r Raw) String(key string) string {
	return stringify(r[key])
}

// First returns the first non-empty string among keys.
func (r Raw) First(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(r.String(k)); v != "" {
			return v
		}
	}
	return ""
}

// Strings returns the field as a list of strings. A scalar becomes a single element.
func (r Raw) Strings(key string) []string {
	switch v := r[key].(type) {
	case nil:
		return nil
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := stringify(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		if s := stringify(v); s != "" {
			return []string{s}
		}
		return nil
	}
}

// Object returns a nested object field (nil if absent or not an object).
func (r Raw) Object(key string) Raw {
	switch v := r[key].(type) {
	case map[string]any:
		return Raw(v)
	case Raw:
		return v
	default:
		return nil
	}
}

// Time parses the field as a timestamp.
func (r Raw) Time(key string) (time.Time, bool) {
	switch v := r[key].(type) {
	case time.Time:
		return v, !v.IsZero()
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	case float64:
		if v > 0 {
			return time.UnixMilli(int64(v)).UTC(), true
		}
	case int64:
		if v > 0 {
			return time.UnixMilli(v).UTC(), true
		}
	}
	return time.Time{}, false
}

// FirstTime returns the first parseable timestamp among keys.
func (r Raw) FirstTime(keys ...string) (time.Time, bool) {
	for _, k := range keys {
		if t, ok := r.Time(k); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// Flatten stringifies every value in sorted key order into one blob.
func (r Raw) Flatten() string {
	var b strings.Builder
	flattenInto(&b, r)
	return strings.TrimSpace(b.String())
}

func flattenInto(b *strings.Builder, v any) {
	switch x := v.(type) {
	case nil:
	case Raw:
		flattenInto(b, map[string]any(x))
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			flattenInto(b, x[k])
		}
	case []any:
		for _, item := range x {
			flattenInto(b, item)
		}
	case []string:
		for _, item := range x {
			flattenInto(b, item)
		}
	default:
		s := stringify(x)
		if s == "" {
			return
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s)
	}
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case json.Number:
		return x.String()
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	case map[string]any, Raw, []any, []string:
		return ""
	default:
		return fmt.Sprint(x)
	}
}
