package vocab

import "strings"

// punctuation stripped before comparison.
var punctReplacer = strings.NewReplacer(
	".", "", ",", "", "!", "", "?", "", ";", "", ":", "",
)

// Normalize canonicalises a string for answer comparison: lower-case,
// punctuation removed, exotic space characters flattened to ASCII spaces,
// whitespace runs collapsed, ends trimmed. Idempotent and total.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = punctReplacer.Replace(s)
	s = strings.Map(func(r rune) rune {
		if isSpaceLike(r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// isSpaceLike matches the Unicode space-ish characters that show up in
// wordlists extracted from PDFs: NBSP, typographic spaces, zero-width
// spaces and the BOM.
func isSpaceLike(r rune) bool {
	switch {
	case r == '\u00a0' || r == '\u1680' || r == '\u180e':
		return true
	case r >= '\u2000' && r <= '\u200b':
		return true
	case r == '\u202f' || r == '\u205f' || r == '\u3000' || r == '\ufeff':
		return true
	}
	return false
}
