package validation

import (
	"strings"
	"testing"

	"github.com/fklezin/qr.upn/internal/upn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(mutate func(f *upn.Fields)) *upn.Record {
	f := upn.Fields{
		Amount:             "00000026874",
		PurposeCode:        "ELEC",
		Purpose:            "Racun 09/2026",
		RecipientIBAN:      "SI56 1910 0000 0123 438",
		RecipientReference: "SI12 1234567890",
		RecipientName:      "Elektro Energija d.o.o.",
	}
	if mutate != nil {
		mutate(&f)
	}
	return upn.NewRecord(f)
}

func rules(warnings []Warning) []string {
	out := make([]string, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, w.Rule)
	}
	return out
}

func TestValidate_CleanRecord(t *testing.T) {
	assert.Empty(t, Validate(record(nil)))
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *upn.Fields)
		want   []string
	}{
		{
			name:   "bad checksum",
			mutate: func(f *upn.Fields) { f.RecipientIBAN = "SI56 1910 0000 0123 439" },
			want:   []string{"iban_checksum"},
		},
		{
			name:   "not an IBAN",
			mutate: func(f *upn.Fields) { f.RecipientIBAN = "12345" },
			want:   []string{"iban_format"},
		},
		{
			name:   "lowercase purpose code",
			mutate: func(f *upn.Fields) { f.PurposeCode = "elec" },
			want:   []string{"purpose_code"},
		},
		{
			name:   "unknown reference model",
			mutate: func(f *upn.Fields) { f.RecipientReference = "XX00 123" },
			want:   []string{"reference_model"},
		},
		{
			name:   "long beneficiary name",
			mutate: func(f *upn.Fields) { f.RecipientName = strings.Repeat("a", MaxBeneficiaryName+1) },
			want:   []string{"beneficiary_length"},
		},
		{
			name:   "long purpose",
			mutate: func(f *upn.Fields) { f.Purpose = strings.Repeat("č", MaxRemittanceText+1) },
			want:   []string{"remittance_length"},
		},
		{
			name:   "zero amount",
			mutate: func(f *upn.Fields) { f.Amount = "00000000000" },
			want:   []string{"amount_range"},
		},
		{
			name: "no remittance",
			mutate: func(f *upn.Fields) {
				f.RecipientReference = ""
				f.Purpose = ""
			},
			want: []string{"remittance_present"},
		},
		{
			name:   "unparseable amount is left to the encoder",
			mutate: func(f *upn.Fields) { f.Amount = "abc" },
			want:   []string{},
		},
		{
			name:   "empty IBAN is left to the encoder",
			mutate: func(f *upn.Fields) { f.RecipientIBAN = "" },
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rules(Validate(record(tt.mutate))))
		})
	}
}

func TestValidator_Options(t *testing.T) {
	rec := record(func(f *upn.Fields) {
		f.RecipientIBAN = "SI56 1910 0000 0123 439"
		f.RecipientReference = ""
		f.Purpose = ""
	})

	v := NewValidatorWithOptions(Options{SkipChecksum: true, RequireRemittance: false})
	assert.Empty(t, v.Check(rec))
	assert.Nil(t, v.Check(nil))
}

func TestValidIBANChecksum(t *testing.T) {
	assert.True(t, ValidIBANChecksum("SI56191000000123438"))
	assert.True(t, ValidIBANChecksum("DE89370400440532013000"))
	assert.False(t, ValidIBANChecksum("SI56191000000123439"))
	assert.False(t, ValidIBANChecksum("SI5"))
	assert.False(t, ValidIBANChecksum("SI56-1910"))
}

func TestWarning_String(t *testing.T) {
	warnings := Validate(record(func(f *upn.Fields) { f.PurposeCode = "x" }))
	require.Len(t, warnings, 1)
	assert.Equal(t, `purposeCode: expected four uppercase letters (rule purpose_code, value "x")`, warnings[0].String())
}
