// =============================================================================
// UPN to EPC Converter - EPC Encoder
// =============================================================================
//
// This module builds the EPC QR (SEPA credit transfer) payload from a decoded
// UPN record. The payload is twelve lines joined with "\n", no trailing
// newline:
//
//    1  BCD                     service tag
//    2  002                     version
//    3  1                       character set (UTF-8)
//    4  SCT                     identification code
//    5  (empty)                 BIC, optional in version 002
//    6  recipient name          beneficiary
//    7  recipient IBAN          whitespace removed
//    8  EUR<amount>             two decimal places
//    9  purpose code            passed through
//   10  recipient reference     structured remittance
//   11  purpose                 unstructured remittance
//   12  (empty)                 beneficiary to originator information
//
// Purpose code, reference and purpose are passed through verbatim, even when
// empty.
//
// =============================================================================

package epc

import (
	"strings"
	"unicode"

	"github.com/fklezin/qr.upn/internal/amount"
	"github.com/fklezin/qr.upn/internal/types"
	"github.com/fklezin/qr.upn/internal/upn"
)

// =============================================================================
// HEADER CONSTANTS
// =============================================================================

const (
	ServiceTag         = "BCD"
	Version            = "002"
	CharacterSet       = "1"
	IdentificationCode = "SCT"

	// LineCount is the number of lines in every payload.
	LineCount = 12

	separator = "\n"
)

// =============================================================================
// PAYLOAD
// =============================================================================

// Payload holds the variable fields of an EPC QR payload. The header lines
// and the empty slots are fixed and added by Lines.
type Payload struct {
	BIC                     string
	BeneficiaryName         string
	BeneficiaryAccount      string
	Amount                  string
	Purpose                 string
	RemittanceStructured    string
	RemittanceText          string
	BeneficiaryToOriginator string
}

// Lines returns the twelve payload lines in order.
func (p Payload) Lines() []string {
	return []string{
		ServiceTag,
		Version,
		CharacterSet,
		IdentificationCode,
		p.BIC,
		p.BeneficiaryName,
		p.BeneficiaryAccount,
		p.Amount,
		p.Purpose,
		p.RemittanceStructured,
		p.RemittanceText,
		p.BeneficiaryToOriginator,
	}
}

// String joins the lines with a single newline.
func (p Payload) String() string {
	return strings.Join(p.Lines(), separator)
}

// =============================================================================
// ENCODE
// =============================================================================

// Build maps a UPN record onto an EPC payload.
//
// Recipient name, recipient IBAN and amount must be non-blank; otherwise the
// result is MissingEssentialData naming every missing field. The amount is
// then normalized and InvalidAmount is returned if that fails.
func Build(rec *upn.Record) (Payload, error) {
	if missing := missingFields(rec); len(missing) > 0 {
		return Payload{}, types.NewMissingEssentialData(missing...)
	}

	formatted, err := amount.Normalize(rec.Amount())
	if err != nil {
		return Payload{}, err
	}

	return Payload{
		BeneficiaryName:      rec.RecipientName(),
		BeneficiaryAccount:   StripSpaces(rec.RecipientIBAN()),
		Amount:               formatted,
		Purpose:              rec.PurposeCode(),
		RemittanceStructured: rec.RecipientReference(),
		RemittanceText:       rec.Purpose(),
	}, nil
}

// Encode returns the EPC payload text for a UPN record.
func Encode(rec *upn.Record) (string, error) {
	p, err := Build(rec)
	if err != nil {
		return "", err
	}
	return p.String(), nil
}

// StripSpaces removes every whitespace rune, e.g. IBAN grouping spaces.
func StripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func missingFields(rec *upn.Record) []string {
	if rec == nil {
		return []string{types.FieldRecipientName, types.FieldRecipientIBAN, types.FieldAmount}
	}

	var missing []string
	if isBlank(rec.RecipientName()) {
		missing = append(missing, types.FieldRecipientName)
	}
	if isBlank(rec.RecipientIBAN()) {
		missing = append(missing, types.FieldRecipientIBAN)
	}
	if isBlank(rec.Amount()) {
		missing = append(missing, types.FieldAmount)
	}
	return missing
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
