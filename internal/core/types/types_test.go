package types

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"float", 12.5, 12.5},
		{"int", 7, 7},
		{"string", "12.5", 12.5},
		{"leading prefix", "12.5 USD", 12.5},
		{"signed exponent", "-1.5e2", -150},
		{"leading dot", ".25", 0.25},
		{"padded", "  3 ", 3},
		{"json number", json.Number("4.75"), 4.75},
		{"garbage", "abc", 0},
		{"empty", "", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
		{"object", map[string]any{"v": 1}, 0},
		{"nan", math.NaN(), 0},
		{"inf", math.Inf(1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAmount(tt.in))
		})
	}
}

func TestSumAmounts(t *testing.T) {
	assert.Equal(t, 0.3, SumAmounts(0.1, 0.2))
	assert.Equal(t, 0.0, SumAmounts())
}

func TestIsBlank(t *testing.T) {
	blank := []any{nil, false, "", 0, 0.0, math.NaN(), json.Number("0")}
	for _, v := range blank {
		assert.True(t, IsBlank(v), "%#v", v)
	}

	present := []any{true, "x", 1, -0.5, []any{}, map[string]any{}, json.Number("1")}
	for _, v := range present {
		assert.False(t, IsBlank(v), "%#v", v)
	}
}

func TestStringOr(t *testing.T) {
	assert.Equal(t, "def", StringOr(nil, "def"))
	assert.Equal(t, "def", StringOr("", "def"))
	assert.Equal(t, "abc", StringOr("abc", "def"))
	assert.Equal(t, "42", StringOr(42.0, "def"))
	assert.Equal(t, `{"a":1}`, StringOr(map[string]any{"a": 1}, "def"))
}

func TestNumberOr(t *testing.T) {
	assert.Equal(t, 5.0, NumberOr(nil, 5))
	assert.Equal(t, 5.0, NumberOr("abc", 5))
	assert.Equal(t, 2.5, NumberOr("2.5", 5))
	assert.Equal(t, 9.0, NumberOr(9.0, 5))
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"date only", "2024-01-31", "2024-01-31"},
		{"rfc3339", "2024-01-31T22:15:00Z", "2024-01-31"},
		{"offset shifts day", "2024-01-31T22:15:00-05:00", "2024-02-01"},
		{"millis", "2024-01-31T10:00:00.123Z", "2024-01-31"},
		{"slashes", "2024/01/31", "2024-01-31"},
		{"time", want, "2024-01-31"},
		{"time pointer", &want, "2024-01-31"},
		{"unix millis", want.UnixMilli(), "2024-01-31"},
		{"float millis", float64(want.UnixMilli()), "2024-01-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatDate(got))
		})
	}

	for _, bad := range []any{
		"not-a-date", "2024-13-45", true, math.NaN(), (*time.Time)(nil),
		1e20, -1e20, 9e15, int64(1 << 62), json.Number("1e20"), math.Inf(-1),
	} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "%#v", bad)
	}
}

func TestParseDate_TimestampRange(t *testing.T) {
	got, err := ParseDate(8.64e15)
	require.NoError(t, err)
	assert.Equal(t, int64(8.64e15), got.UnixMilli())

	got, err = ParseDate(int64(-8.64e15))
	require.NoError(t, err)
	assert.Equal(t, int64(-8.64e15), got.UnixMilli())

	_, err = ParseDate(8.64e15 + 1)
	assert.Error(t, err)
}

func TestIsBlankDate(t *testing.T) {
	assert.True(t, IsBlankDate(nil))
	assert.True(t, IsBlankDate(""))
	assert.True(t, IsBlankDate(time.Time{}))
	assert.True(t, IsBlankDate((*time.Time)(nil)))
	assert.False(t, IsBlankDate("2024-01-01"))
	assert.False(t, IsBlankDate(time.Now()))
}
