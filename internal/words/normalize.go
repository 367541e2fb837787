package words

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// MinWordLen is the shortest secret or whole-word guess accepted.
const MinWordLen = 2

// MaxWordLen is the longest one; status messages must fit a chat message.
const MaxWordLen = 32

// Hyphen is the only non-letter rune of the game alphabet.
const Hyphen = '-'

// IsLetter reports whether r belongs to the game alphabet (а–я, ё, hyphen).
func IsLetter(r rune) bool {
	return (r >= 'а' && r <= 'я') || r == 'ё' || r == Hyphen
}

// Fold trims s, composes it to NFC and lower-cases it with Russian rules.
// Unlike Normalize it keeps every rune, so callers can tell a single
// out-of-alphabet character apart from empty input.
func Fold(s string) string {
	// a Caser keeps state, so each call gets its own
	return cases.Lower(language.Russian).String(norm.NFC.String(strings.TrimSpace(s)))
}

// Normalize folds raw and drops every rune outside the game alphabet.
// The result may be shorter than MinWordLen; see Valid.
func Normalize(raw string) string {
	folded := Fold(raw)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Valid reports whether w is an already-normalized word of playable length.
func Valid(w string) bool {
	if n := len([]rune(w)); n < MinWordLen || n > MaxWordLen {
		return false
	}
	for _, r := range w {
		if !IsLetter(r) {
			return false
		}
	}
	return true
}
