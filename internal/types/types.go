// =============================================================================
// UPN to EPC Converter - Shared Types
// =============================================================================
//
// This package contains the error taxonomy shared by the decoder, the encoder
// and the conversion pipeline. It lives on its own to avoid import cycles:
//   - upn       (raises InvalidFormat)
//   - epc       (raises MissingEssentialData, InvalidAmount)
//   - amount    (raises InvalidAmount)
//   - converter (raises EmptyInput, classifies everything for reporting)
//
// The set of kinds is closed. Callers switch on Kind and render their own
// messages; Error() is a stable machine string, not a user message.
//
// =============================================================================

package types

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// ERROR KINDS
// =============================================================================

// Kind identifies which class of conversion failure occurred.
type Kind int

const (
	// KindNone is returned by KindOf for nil or unclassified errors.
	KindNone Kind = iota

	// EmptyInput means the scanned text was blank before decoding started.
	EmptyInput

	// InvalidFormat means the UPN structural precondition failed.
	InvalidFormat

	// MissingEssentialData means recipient name, IBAN or amount was absent.
	MissingEssentialData

	// InvalidAmount means the amount could not be normalized to a number.
	InvalidAmount
)

// String returns the identifier used in logs and reports.
func (k Kind) String() string {
	switch k {
	case EmptyInput:
		return "EMPTY_INPUT"
	case InvalidFormat:
		return "INVALID_FORMAT"
	case MissingEssentialData:
		return "MISSING_ESSENTIAL_DATA"
	case InvalidAmount:
		return "INVALID_AMOUNT"
	default:
		return "NONE"
	}
}

// =============================================================================
// CONVERSION ERROR
// =============================================================================

// Required field names reported with MissingEssentialData.
const (
	FieldRecipientName = "recipientName"
	FieldRecipientIBAN = "recipientIBAN"
	FieldAmount        = "amount"
)

// ConversionError is the single error type returned by the conversion core.
// Only the parameters belonging to Kind are populated.
type ConversionError struct {
	// Kind is the taxonomy class.
	Kind Kind

	// LineCount is the observed number of lines (InvalidFormat).
	LineCount int

	// Fields lists the required fields that were empty (MissingEssentialData).
	Fields []string

	// Value is the raw amount that failed to normalize (InvalidAmount).
	Value string

	// Err is an optional underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	switch e.Kind {
	case InvalidFormat:
		return fmt.Sprintf("%s: observed %d lines", e.Kind, e.LineCount)
	case MissingEssentialData:
		return fmt.Sprintf("%s: %s", e.Kind, strings.Join(e.Fields, ", "))
	case InvalidAmount:
		if e.Err != nil {
			return fmt.Sprintf("%s: %q: %v", e.Kind, e.Value, e.Err)
		}
		return fmt.Sprintf("%s: %q", e.Kind, e.Value)
	default:
		return e.Kind.String()
	}
}

// Unwrap returns the underlying cause, if any.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a ConversionError of the same kind, so that
// errors.Is(err, &ConversionError{Kind: InvalidAmount}) works.
func (e *ConversionError) Is(target error) bool {
	t, ok := target.(*ConversionError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// =============================================================================
// CONSTRUCTORS
// =============================================================================

// NewEmptyInput returns an EmptyInput error.
func NewEmptyInput() *ConversionError {
	return &ConversionError{Kind: EmptyInput}
}

// NewInvalidFormat returns an InvalidFormat error carrying the observed line count.
func NewInvalidFormat(lineCount int) *ConversionError {
	return &ConversionError{Kind: InvalidFormat, LineCount: lineCount}
}

// NewMissingEssentialData returns a MissingEssentialData error naming the
// empty fields.
func NewMissingEssentialData(fields ...string) *ConversionError {
	return &ConversionError{Kind: MissingEssentialData, Fields: fields}
}

// NewInvalidAmount returns an InvalidAmount error for the given raw value.
func NewInvalidAmount(value string, cause error) *ConversionError {
	return &ConversionError{Kind: InvalidAmount, Value: value, Err: cause}
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

// KindOf returns the taxonomy kind of err, looking through wrapping.
// It returns KindNone for nil and for errors outside the taxonomy.
func KindOf(err error) Kind {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindNone
}

// AsConversionError unwraps err to a *ConversionError if it is one.
func AsConversionError(err error) (*ConversionError, bool) {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
