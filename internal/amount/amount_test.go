package amount

import (
	"testing"

	"github.com/fklezin/qr.upn/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "eleven digit cents", raw: "00000026874", want: "EUR268.74"},
		{name: "ten digit cents", raw: "0000010000", want: "EUR100.00"},
		{name: "single cent", raw: "00000000001", want: "EUR0.01"},
		{name: "zero", raw: "00000000000", want: "EUR0.00"},
		{name: "comma decimal", raw: "26,87", want: "EUR26.87"},
		{name: "period decimal", raw: "26.87", want: "EUR26.87"},
		{name: "one fractional digit", raw: "26.5", want: "EUR26.50"},
		{name: "surrounding whitespace", raw: "  26,87 \t", want: "EUR26.87"},
		{name: "leading period", raw: ".5", want: "EUR0.50"},
		{name: "trailing period", raw: "26.", want: "EUR26.00"},
		{name: "half rounds away from zero", raw: "1.005", want: "EUR1.01"},
		{name: "binary float trap", raw: "1.015", want: "EUR1.02"},
		{name: "below half rounds down", raw: "2.674", want: "EUR2.67"},
		{name: "large cents", raw: "99999999999", want: "EUR999999999.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_InvalidAmount(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"abc",
		"12a4",
		"1.2.3",
		"1,2,3",
		"1,2.3",
		".",
		"-100",
		"+100",
		"1e5",
		"12 34",
		"NaN",
	}

	for _, raw := range inputs {
		t.Run(raw, func(t *testing.T) {
			got, err := Normalize(raw)
			require.Error(t, err)
			assert.Empty(t, got)

			ce, ok := types.AsConversionError(err)
			require.True(t, ok)
			assert.Equal(t, types.InvalidAmount, ce.Kind)
			assert.Equal(t, raw, ce.Value)
		})
	}
}

func TestParse_ReturnsExactDecimal(t *testing.T) {
	value, err := Parse("00000026874")
	require.NoError(t, err)
	assert.True(t, value.Equal(decimal.RequireFromString("268.74")))

	value, err = Parse("0,1")
	require.NoError(t, err)
	assert.True(t, value.Equal(decimal.RequireFromString("0.1")))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "EUR0.00", Format(decimal.Zero))
	assert.Equal(t, "EUR12.30", Format(decimal.NewFromFloat(12.3)))
	assert.Equal(t, "EUR1000000.00", Format(decimal.NewFromInt(1000000)))
}
