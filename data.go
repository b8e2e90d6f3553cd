package formfill

import (
	"strconv"
	"strings"
)

// Unavailable is the sentinel upstream extraction uses for unknown values.
const Unavailable = "No disponible"

// Data is a form payload: a JSON-like map that may contain nested
// sections such as "vehiculo" or "vendedor".
type Data map[string]any

// Section returns the nested map stored under key, or nil when the key is
// absent or does not hold a map.
func (d Data) Section(key string) Data {
	switch v := d[key].(type) {
	case Data:
		return v
	case map[string]any:
		return Data(v)
	case map[string]string:
		out := make(Data, len(v))
		for k, s := range v {
			out[k] = s
		}
		return out
	}
	return nil
}

// Has reports whether key is present, whatever its value.
func (d Data) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// String returns the scalar stored under key as trimmed text. Missing keys,
// non-scalar values and the Unavailable sentinel all yield "".
func (d Data) String(key string) string {
	v, ok := d[key]
	if !ok {
		return ""
	}
	return Scalar(v)
}

// Scalar renders a scalar payload value as trimmed text.
func Scalar(v any) string {
	var s string
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		s = t
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		s = strconv.Itoa(t)
	case int64:
		s = strconv.FormatInt(t, 10)
	case int32:
		s = strconv.FormatInt(int64(t), 10)
	case bool:
		s = strconv.FormatBool(t)
	case interface{ String() string }:
		s = t.String()
	default:
		return ""
	}
	s = strings.TrimSpace(s)
	if IsUnavailable(s) {
		return ""
	}
	return s
}

// IsUnavailable reports whether s is one of the placeholders used for
// unknown values.
func IsUnavailable(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "no disponible", "none", "null", "n/a":
		return true
	}
	return false
}
