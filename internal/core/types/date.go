package types

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// ISOTimestamp is the layout of a millisecond-precision UTC timestamp.
const ISOTimestamp = "2006-01-02T15:04:05.000Z07:00"

// dateLayouts are tried in order when parsing a date string.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	time.DateTime,
	time.DateOnly,
	time.RFC1123Z,
	time.RFC1123,
	"2006/01/02",
}

// ParseDate converts a date-like value to a time.Time.
// Accepted: time.Time, *time.Time, strings in the common ISO and RFC layouts,
// and numbers interpreted as Unix milliseconds.
func ParseDate(v any) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		return val, nil
	case *time.Time:
		if val == nil {
			return time.Time{}, fmt.Errorf("nil time")
		}
		return *val, nil
	case string:
		s := strings.TrimSpace(val)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized date %q", val)
	case int:
		return fromUnixMilli(float64(val))
	case int64:
		return fromUnixMilli(float64(val))
	case float64:
		return fromUnixMilli(val)
	case json.Number:
		ms, err := val.Float64()
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", val, err)
		}
		return fromUnixMilli(ms)
	}
	return time.Time{}, fmt.Errorf("unsupported date value of type %T", v)
}

// maxUnixMilli bounds numeric timestamps to +/-100,000,000 days around the
// epoch, the range a JSON timestamp can express.
const maxUnixMilli = 8.64e15

func fromUnixMilli(ms float64) (time.Time, error) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) || math.Abs(ms) > maxUnixMilli {
		return time.Time{}, fmt.Errorf("timestamp %v out of range", ms)
	}
	return time.UnixMilli(int64(ms)), nil
}

// IsBlankDate reports whether a date argument is missing.
// Zero and nil times count as missing in addition to IsBlank values.
func IsBlankDate(v any) bool {
	switch val := v.(type) {
	case time.Time:
		return val.IsZero()
	case *time.Time:
		return val == nil || val.IsZero()
	}
	return IsBlank(v)
}

// FormatDate renders t as a YYYY-MM-DD calendar date in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}
