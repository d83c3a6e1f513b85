// Package types provides value coercion for loosely-typed API payloads.
package types

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point drift when summing.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// SumAmounts adds the amounts in decimal arithmetic and returns the float result.
func SumAmounts(amounts ...float64) float64 {
	total := Zero()
	for _, a := range amounts {
		total = total.Add(NewMoney(a))
	}
	return total.InexactFloat64()
}

// leadingFloat matches the numeric prefix accepted by a lenient float parse.
var leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseAmount converts a payload value to a number the way a lenient float
// parse does: numbers pass through, strings contribute their leading numeric
// prefix ("12.5 USD" is 12.5). Anything unparseable, NaN or infinite yields 0.
func ParseAmount(v any) float64 {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case json.Number:
		f = parseLeadingFloat(val.String())
	case string:
		f = parseLeadingFloat(val)
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func parseLeadingFloat(s string) float64 {
	m := leadingFloat.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return f
}

// IsBlank reports whether a payload value is absent or empty: nil, false,
// numeric zero, NaN or the empty string.
func IsBlank(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return !val
	case string:
		return val == ""
	case float64:
		return val == 0 || math.IsNaN(val)
	case float32:
		return val == 0
	case int:
		return val == 0
	case int64:
		return val == 0
	case json.Number:
		return val == "" || val == "0"
	}
	return false
}

// StringOr returns v as a string when it is non-blank, otherwise def.
// Non-string values are rendered with their JSON representation.
func StringOr(v any, def string) string {
	if IsBlank(v) {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return def
	}
	return string(b)
}

// NumberOr returns v as a float64 when it is non-blank, otherwise def.
func NumberOr(v any, def float64) float64 {
	if IsBlank(v) {
		return def
	}
	if f := ParseAmount(v); f != 0 {
		return f
	}
	return def
}
