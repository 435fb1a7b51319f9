// =============================================================================
// UPN to EPC Converter - Advisory Validation
// =============================================================================
//
// This module checks a decoded UPN record against rules that banking apps
// commonly enforce on EPC payloads. The checks are ADVISORY: they produce
// warnings that are logged and reported, but they never fail a conversion.
// A conversion fails only with one of the kinds in internal/types.
//
// RULES:
//   - iban_checksum       : recipient IBAN passes the ISO 13616 mod-97 check
//   - iban_format         : two letter country, two check digits, 15-34 chars
//   - purpose_code        : four uppercase letters (ISO 20022 external code)
//   - reference_model     : recipient reference starts with SI or RF
//   - beneficiary_length  : recipient name is at most 70 characters
//   - remittance_length   : purpose is at most 140 characters
//   - amount_range        : amount is between 0.01 and 999999999.99
//   - remittance_present  : reference or purpose is present
//
// =============================================================================

package validation

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fklezin/qr.upn/internal/amount"
	"github.com/fklezin/qr.upn/internal/epc"
	"github.com/fklezin/qr.upn/internal/upn"
	"github.com/shopspring/decimal"
)

// =============================================================================
// LIMITS
// =============================================================================

const (
	// MaxBeneficiaryName is the EPC limit for the beneficiary name.
	MaxBeneficiaryName = 70

	// MaxRemittanceText is the EPC limit for unstructured remittance.
	MaxRemittanceText = 140
)

var (
	minAmount = decimal.RequireFromString("0.01")
	maxAmount = decimal.RequireFromString("999999999.99")

	ibanShape   = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{11,30}$`)
	purposeCode = regexp.MustCompile(`^[A-Z]{4}$`)
)

// =============================================================================
// WARNING TYPE
// =============================================================================

// Warning describes a rule the record does not satisfy.
type Warning struct {
	// Field is the record field the rule applies to.
	Field string

	// Value is the offending value.
	Value string

	// Rule is the identifier of the violated rule.
	Rule string

	// Message is a short English description for logs.
	Message string
}

// String formats the warning for logs and reports.
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s (rule %s, value %q)", w.Field, w.Message, w.Rule, w.Value)
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Options selects which rules run.
type Options struct {
	// SkipChecksum disables the IBAN mod-97 check.
	SkipChecksum bool

	// RequireRemittance warns when both reference and purpose are empty.
	RequireRemittance bool
}

// DefaultOptions returns the options used by the converter.
func DefaultOptions() Options {
	return Options{
		SkipChecksum:      false,
		RequireRemittance: true,
	}
}

// Validator runs the advisory rules.
type Validator struct {
	options Options
}

// NewValidator creates a Validator with default options.
func NewValidator() *Validator {
	return &Validator{options: DefaultOptions()}
}

// NewValidatorWithOptions creates a Validator with custom options.
func NewValidatorWithOptions(options Options) *Validator {
	return &Validator{options: options}
}

// Validate is a shorthand for NewValidator().Check(rec).
func Validate(rec *upn.Record) []Warning {
	return NewValidator().Check(rec)
}

// Check returns every warning for rec, in rule order. A nil record has no
// warnings; missing data is the encoder's concern.
func (v *Validator) Check(rec *upn.Record) []Warning {
	if rec == nil {
		return nil
	}

	var warnings []Warning
	warnings = append(warnings, v.checkIBAN(rec.RecipientIBAN())...)
	warnings = append(warnings, checkPurposeCode(rec.PurposeCode())...)
	warnings = append(warnings, checkReference(rec.RecipientReference())...)
	warnings = append(warnings, checkLength("recipientName", rec.RecipientName(), MaxBeneficiaryName, "beneficiary_length")...)
	warnings = append(warnings, checkLength("purpose", rec.Purpose(), MaxRemittanceText, "remittance_length")...)
	warnings = append(warnings, checkAmount(rec.Amount())...)

	if v.options.RequireRemittance &&
		strings.TrimSpace(rec.RecipientReference()) == "" &&
		strings.TrimSpace(rec.Purpose()) == "" {
		warnings = append(warnings, Warning{
			Field:   "remittance",
			Rule:    "remittance_present",
			Message: "neither reference nor purpose is present",
		})
	}

	return warnings
}

// =============================================================================
// RULES
// =============================================================================

func (v *Validator) checkIBAN(raw string) []Warning {
	iban := strings.ToUpper(epc.StripSpaces(raw))
	if iban == "" {
		return nil
	}

	if !ibanShape.MatchString(iban) {
		return []Warning{{
			Field:   "recipientIBAN",
			Value:   raw,
			Rule:    "iban_format",
			Message: "does not look like an IBAN",
		}}
	}

	if !v.options.SkipChecksum && !ValidIBANChecksum(iban) {
		return []Warning{{
			Field:   "recipientIBAN",
			Value:   raw,
			Rule:    "iban_checksum",
			Message: "check digits do not match",
		}}
	}

	return nil
}

func checkPurposeCode(code string) []Warning {
	if code == "" || purposeCode.MatchString(code) {
		return nil
	}
	return []Warning{{
		Field:   "purposeCode",
		Value:   code,
		Rule:    "purpose_code",
		Message: "expected four uppercase letters",
	}}
}

func checkReference(ref string) []Warning {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "SI") || strings.HasPrefix(ref, "RF") {
		return nil
	}
	return []Warning{{
		Field:   "recipientReference",
		Value:   ref,
		Rule:    "reference_model",
		Message: "expected an SI or RF reference model",
	}}
}

func checkLength(field, value string, max int, rule string) []Warning {
	if utf8.RuneCountInString(value) <= max {
		return nil
	}
	return []Warning{{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: fmt.Sprintf("longer than %d characters", max),
	}}
}

func checkAmount(raw string) []Warning {
	value, err := amount.Parse(raw)
	if err != nil {
		// Unparseable amounts fail the conversion; nothing to advise.
		return nil
	}
	if value.LessThan(minAmount) || value.GreaterThan(maxAmount) {
		return []Warning{{
			Field:   "amount",
			Value:   raw,
			Rule:    "amount_range",
			Message: "outside 0.01..999999999.99",
		}}
	}
	return nil
}

// ValidIBANChecksum reports whether iban (no spaces, uppercase) passes the
// ISO 13616 mod-97 check.
func ValidIBANChecksum(iban string) bool {
	if len(iban) < 5 {
		return false
	}

	rearranged := iban[4:] + iban[:4]
	var digits strings.Builder
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			fmt.Fprintf(&digits, "%d", r-'A'+10)
		default:
			return false
		}
	}

	n, ok := new(big.Int).SetString(digits.String(), 10)
	if !ok {
		return false
	}
	return new(big.Int).Mod(n, big.NewInt(97)).Int64() == 1
}
