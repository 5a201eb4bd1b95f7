package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Outcome records how a raw value was turned into its normalized form.
type Outcome int

const (
	Parsed Outcome = iota
	Absent
	Empty
	Malformed
	Clamped
)

func (o Outcome) String() string {
	switch o {
	case Parsed:
		return "parsed"
	case Absent:
		return "absent"
	case Empty:
		return "empty"
	case Malformed:
		return "malformed"
	case Clamped:
		return "clamped"
	default:
		return "unknown"
	}
}

// Coerced reports whether the value was replaced or altered, which callers
// must surface as a reason on the affected record.
func (o Outcome) Coerced() bool {
	return o == Empty || o == Malformed || o == Clamped
}

// NonNegativeInt converts f to an int >= 0. Absent and empty values yield def;
// malformed values yield def; negative values clamp to 0; fractional values
// truncate toward zero.
func NonNegativeInt(f Field, def int) (int, Outcome) {
	n, outcome := signedInt(f, false)
	switch outcome {
	case Absent, Empty, Malformed:
		return def, outcome
	}
	if n < 0 {
		return 0, Clamped
	}
	return n, outcome
}

// Int converts f to a signed int, used for status and type codes where -1
// and -2 are meaningful. Codes are exact, so fractional values are malformed.
func Int(f Field) (int, Outcome) {
	return signedInt(f, true)
}

// OptionalFloat converts f to a finite, non-negative float. The boolean is
// false when no usable value exists.
func OptionalFloat(f Field) (float64, bool, Outcome) {
	if !f.Present() {
		return 0, false, Absent
	}
	raw := f.raw
	if s, ok := textValue(raw); ok {
		if s == "" {
			return 0, false, Empty
		}
		raw = s
	}
	if !scalar(raw) {
		return 0, false, Malformed
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false, Malformed
	}
	return v, true, Parsed
}

// Text converts f to a trimmed string. Numbers are rendered in decimal form.
func Text(f Field) string {
	if !f.Present() {
		return ""
	}
	if s, ok := textValue(f.raw); ok {
		return s
	}
	switch v := f.raw.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	s, err := cast.ToStringE(f.raw)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// Flag converts f to a boolean. Only explicit truthy values count.
func Flag(f Field) bool {
	if !f.Present() {
		return false
	}
	if v, ok := f.raw.(bool); ok {
		return v
	}
	b, err := cast.ToBoolE(Text(f))
	return err == nil && b
}

// Note describes a coercion for display next to the affected record. It
// returns an empty string when nothing was coerced.
func Note(field string, f Field, outcome Outcome, result any) string {
	switch outcome {
	case Empty:
		return fmt.Sprintf("%s: empty value coerced to %v", field, result)
	case Malformed:
		return fmt.Sprintf("%s: malformed value %s coerced to %v", field, quoteRaw(f), result)
	case Clamped:
		return fmt.Sprintf("%s: out-of-range value %s clamped to %v", field, quoteRaw(f), result)
	default:
		return ""
	}
}

func signedInt(f Field, exact bool) (int, Outcome) {
	if !f.Present() {
		return 0, Absent
	}
	raw := f.raw
	switch v := raw.(type) {
	case int:
		return v, Parsed
	case int64:
		return clampInt64(v)
	case int32:
		return int(v), Parsed
	}
	if s, ok := textValue(raw); ok {
		if s == "" {
			return 0, Empty
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return clampInt64(n)
		}
		raw = s
	}
	if !scalar(raw) {
		return 0, Malformed
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, Malformed
	}
	if exact && v != math.Trunc(v) {
		return 0, Malformed
	}
	if v >= math.MaxInt64 {
		return math.MaxInt, Clamped
	}
	if v <= math.MinInt64 {
		return math.MinInt, Clamped
	}
	return int(v), Parsed
}

func clampInt64(v int64) (int, Outcome) {
	if v > math.MaxInt {
		return math.MaxInt, Clamped
	}
	if v < math.MinInt {
		return math.MinInt, Clamped
	}
	return int(v), Parsed
}

// textValue unwraps strings and json.Number literals.
func textValue(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v), true
	case json.Number:
		return strings.TrimSpace(v.String()), true
	default:
		return "", false
	}
}

// scalar rejects values cast would happily convert but that are not numbers
// in any meaningful sense (booleans, objects, arrays).
func scalar(raw any) bool {
	switch raw.(type) {
	case bool, map[string]any, []any:
		return false
	default:
		return true
	}
}

func quoteRaw(f Field) string {
	if !f.Present() {
		return "null"
	}
	if s, ok := f.raw.(string); ok {
		return strconv.Quote(s)
	}
	data, err := json.Marshal(f.raw)
	if err != nil {
		return fmt.Sprintf("%v", f.raw)
	}
	return string(data)
}
