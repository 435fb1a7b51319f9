// Package messages renders conversion errors as user-facing text.
//
// The conversion core only returns classified errors. Turning them into
// sentences is a caller concern and lives here, in English and Slovenian.
package messages

import (
	"fmt"
	"strings"

	"github.com/fklezin/qr.upn/internal/types"
	"github.com/fklezin/qr.upn/internal/upn"
)

// Lang is a supported output language.
type Lang string

const (
	English   Lang = "en"
	Slovenian Lang = "sl"
)

// ParseLang maps a language tag such as "sl", "sl-SI" or "EN" to a Lang.
// Unknown tags fall back to English.
func ParseLang(tag string) Lang {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if strings.HasPrefix(tag, string(Slovenian)) {
		return Slovenian
	}
	return English
}

type text struct {
	en, sl string
}

func (t text) in(lang Lang) string {
	if lang == Slovenian {
		return t.sl
	}
	return t.en
}

var (
	emptyInput = text{
		en: "Scan failed: The QR code is empty or could not be read.",
		sl: "Skeniranje ni uspelo: QR koda je prazna ali je ni mogoče prebrati.",
	}
	invalidFormat = text{
		en: "Invalid UPN QR format. Expected at least %d lines starting with %s, but found %d.",
		sl: "Neveljavna UPN QR oblika. Pričakovanih je bilo vsaj %d vrstic, ki se začnejo z %s, najdenih pa %d.",
	}
	missingData = text{
		en: "Missing essential data for EPC conversion (Recipient Name, IBAN, or Amount).",
		sl: "Manjkajo bistveni podatki za pretvorbo v EPC (ime prejemnika, IBAN ali znesek).",
	}
	invalidAmount = text{
		en: "Invalid amount format in UPN data.",
		sl: "Neveljavna oblika zneska v podatkih UPN.",
	}
	unknown = text{
		en: "An unknown error occurred during parsing.",
		sl: "Med razčlenjevanjem je prišlo do neznane napake.",
	}
)

// For returns the message for err in lang. It returns "" for a nil error.
func For(err error, lang Lang) string {
	if err == nil {
		return ""
	}

	ce, ok := types.AsConversionError(err)
	if !ok {
		return unknown.in(lang)
	}

	switch ce.Kind {
	case types.EmptyInput:
		return emptyInput.in(lang)
	case types.InvalidFormat:
		return fmt.Sprintf(invalidFormat.in(lang), upn.MinLines, upn.Tag, ce.LineCount)
	case types.MissingEssentialData:
		return missingData.in(lang)
	case types.InvalidAmount:
		return invalidAmount.in(lang)
	default:
		return unknown.in(lang)
	}
}
