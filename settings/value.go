// Package settings turns the loosely typed per-control settings the device
// host stores into typed values, and picks the network destination for each
// control slot.
package settings

import (
	"math"
	"strconv"
	"strings"
)

// Raw is a settings record as decoded from JSON. Missing, null or malformed
// fields are never an error; they fall back to defaults.
type Raw map[string]interface{}

// field lists the keys accepted for one logical setting, in priority order.
type field []string

func keys(k ...string) field { return k }

// first returns the value of the first key in f whose value parse accepts,
// or def when none does.
func first[T any](raw Raw, f field, def T, parse func(interface{}) (T, bool)) T {
	for _, k := range f {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		if t, ok := parse(v); ok {
			return t
		}
	}
	return def
}

func stringField(raw Raw, f field, def string) string {
	return first(raw, f, def, String)
}

func intField(raw Raw, f field, def int) int {
	return first(raw, f, def, Int)
}

func boolField(raw Raw, f field) bool {
	return first(raw, f, false, Bool)
}

// String accepts non-empty strings only.
func String(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok && s != ""
}

// Int parses v leniently: numbers are truncated toward zero and strings are
// read up to the first character that is not part of a leading integer, so
// "9000abc" is 9000. Values outside the int32 range are rejected.
func Int(v interface{}) (int, bool) {
	switch t := v.(type) {
	case int:
		return fromInt64(int64(t))
	case int32:
		return int(t), true
	case int64:
		return fromInt64(t)
	case float32:
		return fromFloat(float64(t))
	case float64:
		return fromFloat(t)
	case string:
		return parseLeadingInt(t)
	case interface{ String() string }:
		return parseLeadingInt(t.String())
	}
	return 0, false
}

// Bool reports true for true, "true", 1 and "1"; everything else is false.
func Bool(v interface{}) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		return t == "true" || t == "1", true
	case float64:
		return t == 1, true
	case int:
		return t == 1, true
	}
	return false, true
}

func fromInt64(i int64) (int, bool) {
	if i < math.MinInt32 || i > math.MaxInt32 {
		return 0, false
	}
	return int(i), true
}

func fromFloat(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	f = math.Trunc(f)
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return fromInt64(n)
}
