// Package bntext canonicalizes Bengali text for comparison.
//
// OCR output of Bengali script varies in marks the matcher should not care
// about: the visarga (ঃ), the danda sentence mark (।), the halant conjunct
// marker (্), and spacing. Normalize strips all of them in a single pass so
// that two renderings of the same name collapse to one canonical form.
//
// Normalized text is for comparison only. It is not suitable for display:
// stripping the halant changes how conjuncts would render.
package bntext

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Characters removed during normalization, alongside all Unicode whitespace.
const (
	visarga = 'ঃ'
	danda   = '।'
	halant  = '্'
)

// normalizer removes every stripped rune class in one transformer pass.
var normalizer = runes.Remove(runes.Predicate(func(r rune) bool {
	switch r {
	case visarga, danda, halant:
		return true
	}
	return unicode.IsSpace(r)
}))

// Normalize returns the canonical comparison form of text: the visarga,
// danda, and halant marks and all whitespace are removed in one pass.
// Normalize is idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	out, _, err := transform.String(normalizer, text)
	if err != nil {
		// runes.Remove never fails on valid input; invalid UTF-8 is
		// passed through untouched rather than dropped.
		return text
	}
	return out
}
