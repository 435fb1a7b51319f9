package epc

import (
	"strings"
	"testing"

	"github.com/fklezin/qr.upn/internal/types"
	"github.com/fklezin/qr.upn/internal/upn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(mutate func(f *upn.Fields)) *upn.Record {
	f := upn.Fields{
		PayerName:          "Miha Kovac",
		Amount:             "0000010000",
		PurposeCode:        "OTHR",
		Purpose:            "Clanarina 2026",
		RecipientIBAN:      "SI56 1910 0000 0123 438",
		RecipientReference: "SI00 2026-10",
		RecipientName:      "Janez Novak",
	}
	if mutate != nil {
		mutate(&f)
	}
	return upn.NewRecord(f)
}

func TestEncode(t *testing.T) {
	out, err := Encode(record(nil))
	require.NoError(t, err)

	want := strings.Join([]string{
		"BCD",
		"002",
		"1",
		"SCT",
		"",
		"Janez Novak",
		"SI56191000000123438",
		"EUR100.00",
		"OTHR",
		"SI00 2026-10",
		"Clanarina 2026",
		"",
	}, "\n")
	assert.Equal(t, want, out)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, LineCount)
	assert.Equal(t, "SI56191000000123438", lines[6])
	assert.Equal(t, "EUR100.00", lines[7])
	assert.False(t, strings.HasSuffix(out, "\n\n"))
}

func TestEncode_EmptyRemittanceIsValid(t *testing.T) {
	out, err := Encode(record(func(f *upn.Fields) {
		f.PurposeCode = ""
		f.Purpose = ""
		f.RecipientReference = ""
	}))
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, LineCount)
	assert.Equal(t, "", lines[8])
	assert.Equal(t, "", lines[9])
	assert.Equal(t, "", lines[10])
}

func TestEncode_MissingEssentialData(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *upn.Fields)
		want   []string
	}{
		{
			name:   "empty recipient IBAN",
			mutate: func(f *upn.Fields) { f.RecipientIBAN = "" },
			want:   []string{types.FieldRecipientIBAN},
		},
		{
			name:   "blank recipient IBAN with invalid amount",
			mutate: func(f *upn.Fields) { f.RecipientIBAN = "   "; f.Amount = "abc" },
			want:   []string{types.FieldRecipientIBAN},
		},
		{
			name:   "empty recipient name",
			mutate: func(f *upn.Fields) { f.RecipientName = "" },
			want:   []string{types.FieldRecipientName},
		},
		{
			name:   "empty amount",
			mutate: func(f *upn.Fields) { f.Amount = "" },
			want:   []string{types.FieldAmount},
		},
		{
			name: "everything missing",
			mutate: func(f *upn.Fields) {
				f.RecipientName = ""
				f.RecipientIBAN = ""
				f.Amount = " "
			},
			want: []string{types.FieldRecipientName, types.FieldRecipientIBAN, types.FieldAmount},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Encode(record(tt.mutate))
			require.Error(t, err)
			assert.Empty(t, out)

			ce, ok := types.AsConversionError(err)
			require.True(t, ok)
			assert.Equal(t, types.MissingEssentialData, ce.Kind)
			assert.Equal(t, tt.want, ce.Fields)
		})
	}
}

func TestEncode_NilRecord(t *testing.T) {
	_, err := Encode(nil)
	assert.Equal(t, types.MissingEssentialData, types.KindOf(err))
}

func TestEncode_InvalidAmount(t *testing.T) {
	out, err := Encode(record(func(f *upn.Fields) { f.Amount = "12,34,56" }))
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Equal(t, types.InvalidAmount, types.KindOf(err))
}

func TestEncode_Deterministic(t *testing.T) {
	rec := record(nil)

	first, err := Encode(rec)
	require.NoError(t, err)
	second, err := Encode(rec)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestStripSpaces(t *testing.T) {
	assert.Equal(t, "SI56191000000123438", StripSpaces(" SI56 1910\t0000 0123 438 "))
	assert.Equal(t, "", StripSpaces("   "))
}

func TestPayload_Lines(t *testing.T) {
	p := Payload{BeneficiaryName: "A", BeneficiaryAccount: "B", Amount: "EUR1.00"}
	lines := p.Lines()

	require.Len(t, lines, LineCount)
	assert.Equal(t, []string{ServiceTag, Version, CharacterSet, IdentificationCode}, lines[:4])
	assert.Equal(t, "", lines[4])
	assert.Equal(t, "", lines[11])
}
