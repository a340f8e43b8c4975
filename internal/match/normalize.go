// Package match judges free-text quiz answers: it normalizes Norwegian text,
// computes edit distance with length-aware thresholds, and derives the set of
// acceptable alternative answers from a canonical meaning.
package match

import (
	"strings"
	"unicode"
)

// norwegianReplacer maps the Norwegian letters æ, ø and å to their common
// ASCII substitutions so that answers typed on a keyboard without them
// still compare equal.
var norwegianReplacer = strings.NewReplacer(
	"æ", "ae", "Æ", "ae",
	"ø", "o", "Ø", "o",
	"å", "a", "Å", "a",
)

// Normalize lowercases, trims and transliterates an answer, removes
// punctuation and collapses runs of whitespace into single spaces.
func Normalize(s string) string {
	s = norwegianReplacer.Replace(strings.TrimSpace(s))
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	lastSpace := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			if !lastSpace && b.Len() > 0 {
				b.WriteRune(' ')
				lastSpace = true
			}
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			// dropped entirely
		default:
			b.WriteRune(r)
			lastSpace = false
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// stripSpaces removes the remaining spaces from an already normalized answer.
func stripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
