// Package records defines the generic record shape produced by decoding a
// raw upstream payload. A Record is an open map keyed by dimension name; it
// exists only between the decoder and the cleaner boundary, where it is
// converted into a typed per-dataset record.
package records

import (
	"encoding/json"
	"strconv"
)

// Record is one decoded observation as a dimension-name -> value map.
type Record map[string]any

// String returns the string value for key, or "" when the key is missing or
// the value is not string-like.
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	}
	return ""
}

// Has reports whether key is present, regardless of its value.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Float returns the numeric value for key. The second return is false when
// the key is missing, nil, or not parseable as a finite number.
func (r Record) Float(key string) (float64, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
