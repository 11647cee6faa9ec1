package markers

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize turns a lab-report label into a lookup key:
// diacritics folded, lower-cased, everything but letters and digits removed.
// "Vitamin D (25-OH)" and "vitamin d 25oh" share the key "vitamind25oh".
func Normalize(label string) string {
	fold := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(fold, label)
	if err != nil {
		folded = label
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
