// =============================================================================
// UPN to EPC Converter - UPN Decoder
// =============================================================================
//
// This module decodes the text carried by a Slovenian UPN QR code into a
// Record. The format has no delimiters other than line breaks and no
// self-describing schema, so every field is taken from a fixed line index.
//
// LINE LAYOUT (0-indexed):
//    0  UPNQR tag              10  urgent marker
//    1  payer IBAN             11  purpose code
//    2  deposit marker         12  purpose
//    3  withdrawal marker      13  payment due date
//    4  payer reference        14  recipient IBAN
//    5  payer name             15  recipient reference
//    6  payer street           16  recipient name
//    7  payer city             17  recipient street
//    8  amount                 18  recipient city
//    9  payment date           19  control sum (ignored)
//
// The decoder is purely structural. Whether the record is usable for a
// payment is decided by the encoder.
//
// =============================================================================

package upn

import (
	"strings"
	"unicode"

	"github.com/fklezin/qr.upn/internal/types"
)

// =============================================================================
// FORMAT CONSTANTS
// =============================================================================

const (
	// Tag is the literal that must appear on the first line.
	Tag = "UPNQR"

	// MinLines is the minimum number of lines in a valid payload.
	MinLines = 20

	// Marker is the only value that makes a marker field true.
	Marker = "X"

	// bom is the UTF-8 byte-order mark some scanners forward verbatim.
	bom = "\uFEFF"
)

// Line indexes of the UPN layout.
const (
	lineTag = iota
	linePayerIBAN
	lineDeposit
	lineWithdrawal
	linePayerReference
	linePayerName
	linePayerStreet
	linePayerCity
	lineAmount
	linePaymentDate
	lineUrgent
	linePurposeCode
	linePurpose
	linePaymentDueDate
	lineRecipientIBAN
	lineRecipientReference
	lineRecipientName
	lineRecipientStreet
	lineRecipientCity
)

// =============================================================================
// DECODE
// =============================================================================

// Decode parses raw UPN QR text into a Record.
//
// The text is trimmed, split on newlines and each line is right-trimmed;
// leading whitespace inside a line is kept. Fewer than MinLines lines or a
// first line other than Tag fails with InvalidFormat carrying the observed
// line count. Lines after the recipient city are ignored.
func Decode(raw string) (*Record, error) {
	lines := SplitLines(raw)

	if len(lines) < MinLines || lines[lineTag] != Tag {
		return nil, types.NewInvalidFormat(len(lines))
	}

	rec := &Record{
		payerIBAN:          lines[linePayerIBAN],
		deposit:            isMarked(lines[lineDeposit]),
		withdrawal:         isMarked(lines[lineWithdrawal]),
		payerReference:     lines[linePayerReference],
		payerName:          lines[linePayerName],
		payerStreet:        lines[linePayerStreet],
		payerCity:          lines[linePayerCity],
		amount:             lines[lineAmount],
		urgent:             isMarked(lines[lineUrgent]),
		purposeCode:        lines[linePurposeCode],
		purpose:            lines[linePurpose],
		paymentDueDate:     lines[linePaymentDueDate],
		recipientIBAN:      lines[lineRecipientIBAN],
		recipientReference: lines[lineRecipientReference],
		recipientName:      lines[lineRecipientName],
		recipientStreet:    lines[lineRecipientStreet],
		recipientCity:      lines[lineRecipientCity],
	}

	if date := strings.TrimSpace(lines[linePaymentDate]); date != "" {
		rec.paymentDate = date
		rec.hasPaymentDate = true
	}

	return rec, nil
}

// SplitLines applies the decoder's line rules to raw text: strip a leading
// BOM, trim the whole text, split on "\n" and right-trim every line.
// Blank text yields no lines.
func SplitLines(raw string) []string {
	text := strings.TrimSpace(StripBOM(raw))
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	return lines
}

// StripBOM removes a single leading UTF-8 byte-order mark.
func StripBOM(s string) string {
	return strings.TrimPrefix(s, bom)
}

// isMarked is a strict equality check; " X", "x" and "XX" are all false.
func isMarked(line string) bool {
	return line == Marker
}
