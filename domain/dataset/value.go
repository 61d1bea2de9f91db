package dataset

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Cell values arrive as loosely-typed scalars (number, string, boolean,
// null). These helpers are the only sanctioned conversions; nothing in
// the engine relies on implicit coercion.

var leadingDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// TryParseNumber converts a raw cell value to a float64. Strings must
// parse fully to a finite number - partial matches like "5px" or
// "12abc" do not count. Booleans and nulls are not numbers.
func TryParseNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case float32:
		return TryParseNumber(float64(v))
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// LooksLikeDate reports whether a string value leads with an ISO
// YYYY-MM-DD date. Only string cells can be dates.
func LooksLikeDate(value interface{}) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	return leadingDatePattern.MatchString(strings.TrimSpace(s))
}

// IsMissing reports whether a cell value counts as absent for
// profiling purposes (nil or empty string).
func IsMissing(value interface{}) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// ValueKey normalizes a cell value for uniqueness counting, so that
// 42, "42" and 42.0 collapse to the same key.
func ValueKey(value interface{}) string {
	if f, ok := TryParseNumber(value); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return ""
	}
}
