// Package code derives the identifying key of a contact from its name and surnames.
package code

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize decomposes s canonically, drops combining marks and lower-cases
// the result. "García" becomes "garcia", "Muñoz" becomes "munoz". The output
// is left decomposed: Hangul syllables come back as conjoining jamo.
func Normalize(s string) string {
	// transform.Chain is stateful, so build a fresh one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return strings.ToLower(stripped)
}

// Generate returns the contact code for name and surnames.
//
// The code is the first letter of the name followed by either the single
// surname in full, or, for several surnames, the first letter of the first
// surname and every remaining surname concatenated. Empty inputs contribute
// nothing, so Generate("", "") is "".
func Generate(name, surnames string) string {
	n := Normalize(name)
	parts := strings.Fields(Normalize(surnames))

	var b strings.Builder
	if r, ok := firstRune(n); ok {
		b.WriteRune(r)
	}

	switch len(parts) {
	case 0:
	case 1:
		b.WriteString(parts[0])
	default:
		r, _ := firstRune(parts[0])
		b.WriteRune(r)
		for _, p := range parts[1:] {
			b.WriteString(p)
		}
	}
	return b.String()
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}
