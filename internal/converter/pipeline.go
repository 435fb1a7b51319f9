// =============================================================================
// UPN to EPC Converter - Conversion Pipeline
// =============================================================================
//
// Convert composes the two pure stages of the core:
//
//   raw text -> upn.Decode -> record -> epc.Encode -> EPC payload
//
// Blank input is rejected with EmptyInput before decoding is attempted.
// Advisory validation runs on the decoded record; its warnings are returned
// alongside the payload and never turn a success into a failure.
//
// CONCURRENCY:
//   Convert touches only its arguments and may be called from any number of
//   goroutines at once.
//
// =============================================================================

package converter

import (
	"strings"

	"github.com/fklezin/qr.upn/internal/epc"
	"github.com/fklezin/qr.upn/internal/types"
	"github.com/fklezin/qr.upn/internal/upn"
	"github.com/fklezin/qr.upn/internal/validation"
)

// Outcome is a successful conversion.
type Outcome struct {
	// Record is the decoded UPN record.
	Record *upn.Record

	// EPC holds the individual payload fields.
	EPC epc.Payload

	// Payload is the EPC payload text, ready to render as a QR code.
	Payload string

	// Warnings are advisory findings about the record.
	Warnings []validation.Warning
}

// Convert converts raw UPN QR text to an EPC payload using the default
// advisory rules.
func Convert(raw string) (*Outcome, error) {
	return ConvertWith(raw, validation.NewValidator())
}

// ConvertWith is Convert with a caller-supplied validator. A nil validator
// skips advisory checks.
func ConvertWith(raw string, v *validation.Validator) (*Outcome, error) {
	if strings.TrimSpace(upn.StripBOM(raw)) == "" {
		return nil, types.NewEmptyInput()
	}

	rec, err := upn.Decode(raw)
	if err != nil {
		return nil, err
	}

	payload, err := epc.Build(rec)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		Record:  rec,
		EPC:     payload,
		Payload: payload.String(),
	}
	if v != nil {
		outcome.Warnings = v.Check(rec)
	}

	return outcome, nil
}
