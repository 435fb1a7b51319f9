// =============================================================================
// UPN to EPC Converter - Amount Normalization
// =============================================================================
//
// A UPN amount is usually a zero-padded count of cents ("00000026874" is
// 268.74). Hand-typed payloads sometimes carry a decimal amount instead,
// written with a period or, in the Slovenian locale, a comma ("26,87").
//
// Values are held as decimal.Decimal so no binary floating-point rounding
// happens at the two-decimal boundary. Rounding to two places is
// round-half-away-from-zero.
//
// =============================================================================

// Package amount normalizes the UPN amount field into the EPC amount line.
package amount

import (
	"errors"
	"regexp"
	"strings"

	"github.com/fklezin/qr.upn/internal/types"
	"github.com/shopspring/decimal"
)

// Currency is the only currency the converter emits.
const Currency = "EUR"

// Places is the number of fractional digits in the formatted amount.
const Places = 2

var (
	minorUnits = regexp.MustCompile(`^[0-9]+$`)
	majorUnits = regexp.MustCompile(`^(?:[0-9]+\.[0-9]*|\.[0-9]+)$`)

	errEmpty     = errors.New("empty amount")
	errNotNumber = errors.New("not a number")
)

// Parse converts a raw amount string to a decimal value.
//
// Whitespace is trimmed and a comma decimal separator becomes a period.
// A digits-only string is a count of cents and is divided by 100; a string
// with exactly one period is a decimal amount. Anything else, including
// signs, exponents and repeated separators, fails with InvalidAmount.
func Parse(raw string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")

	switch {
	case s == "":
		return decimal.Zero, types.NewInvalidAmount(raw, errEmpty)

	case minorUnits.MatchString(s):
		cents, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, types.NewInvalidAmount(raw, err)
		}
		return cents.Shift(-Places), nil

	case majorUnits.MatchString(s):
		value, err := decimal.NewFromString(canonical(s))
		if err != nil {
			return decimal.Zero, types.NewInvalidAmount(raw, err)
		}
		return value, nil

	default:
		return decimal.Zero, types.NewInvalidAmount(raw, errNotNumber)
	}
}

// Format renders a value as the EPC amount line, e.g. "EUR26.87".
func Format(value decimal.Decimal) string {
	return Currency + value.StringFixed(Places)
}

// Normalize parses raw and formats the result in one step.
func Normalize(raw string) (string, error) {
	value, err := Parse(raw)
	if err != nil {
		return "", err
	}
	return Format(value), nil
}

// canonical pads a bare leading or trailing period with a zero so the
// decimal parser sees a complete number: ".5" -> "0.5", "26." -> "26.0".
func canonical(s string) string {
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}
