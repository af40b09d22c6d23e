package clauses

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var dandaReplacer = strings.NewReplacer("।", ".", "॥", ".")

// Preprocess normalizes text to NFC, collapses whitespace and maps
// Indic sentence terminators to ASCII periods for Indic languages.
func Preprocess(text, language string) string {
	if text == "" {
		return text
	}
	out := normalizeWhitespace(norm.NFC.String(text))
	if usesDanda(language) {
		out = dandaReplacer.Replace(out)
	}
	return out
}

func usesDanda(language string) bool {
	switch language {
	case "hindi", "marathi", "nepali":
		return true
	default:
		return false
	}
}
