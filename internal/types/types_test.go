package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil error", err: nil, want: KindNone},
		{name: "foreign error", err: errors.New("boom"), want: KindNone},
		{name: "empty input", err: NewEmptyInput(), want: EmptyInput},
		{name: "invalid format", err: NewInvalidFormat(3), want: InvalidFormat},
		{name: "wrapped missing data", err: fmt.Errorf("encode: %w", NewMissingEssentialData(FieldAmount)), want: MissingEssentialData},
		{name: "invalid amount", err: NewInvalidAmount("abc", nil), want: InvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestConversionError_Parameters(t *testing.T) {
	err := fmt.Errorf("decode: %w", NewInvalidFormat(7))

	ce, ok := AsConversionError(err)
	require.True(t, ok)
	assert.Equal(t, InvalidFormat, ce.Kind)
	assert.Equal(t, 7, ce.LineCount)
	assert.Equal(t, "INVALID_FORMAT: observed 7 lines", ce.Error())

	missing := NewMissingEssentialData(FieldRecipientName, FieldRecipientIBAN)
	assert.Equal(t, []string{"recipientName", "recipientIBAN"}, missing.Fields)
	assert.Equal(t, "MISSING_ESSENTIAL_DATA: recipientName, recipientIBAN", missing.Error())
}

func TestConversionError_IsMatchesKind(t *testing.T) {
	cause := errors.New("not a number")
	err := fmt.Errorf("wrap: %w", NewInvalidAmount("x1", cause))

	assert.True(t, errors.Is(err, &ConversionError{Kind: InvalidAmount}))
	assert.False(t, errors.Is(err, &ConversionError{Kind: InvalidFormat}))
	assert.True(t, errors.Is(err, cause))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "EMPTY_INPUT", EmptyInput.String())
	assert.Equal(t, "INVALID_AMOUNT", InvalidAmount.String())
	assert.Equal(t, "NONE", Kind(99).String())
}
