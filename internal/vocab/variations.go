package vocab

import (
	"regexp"
	"strings"
)

var (
	pronunciationRE = regexp.MustCompile(`/[^/]+/`)
	posTagRE        = regexp.MustCompile(`(?i)\((v\.|n\.|adj\.|adv\.|prep\.|pron\.|phr\.|phr\s?v\.)\)`)
	pastPartRE      = regexp.MustCompile(`,\s*p\.p\.`)
	parenGroupRE    = regexp.MustCompile(`\([^)]+\)`)
	whitespaceRE    = regexp.MustCompile(`\s+`)
)

// CleanForDisplay strips pronunciation segments, part-of-speech tags, the
// past-participle marker and asterisks from raw wordlist text, leaving the
// form shown to the learner.
func CleanForDisplay(text string) string {
	text = pronunciationRE.ReplaceAllString(text, "")
	text = posTagRE.ReplaceAllString(text, "")
	text = pastPartRE.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "*", "")
	text = whitespaceRE.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// suffixFragmentMax is the cut-off below which a slash part is treated as a
// suffix fragment rather than a full alternative word. The rule is
// deliberately crude: a 3-letter full word is indistinguishable from a
// suffix under it, and the acceptance behaviour downstream depends on that
// exact heuristic, so don't make it smarter.
const suffixFragmentMax = 3

// Variations expands raw wordlist text into the set of literal answers it
// stands for. Slash parts become suffix substitutions or full alternatives,
// and parenthesised fragments yield both the kept and the dropped form.
// The result preserves first-seen order and never contains empty strings.
func Variations(text string) []string {
	clean := CleanForDisplay(text)

	parts := strings.Split(clean, "/")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	base := parts[0]

	candidates := newOrderedSet()
	candidates.add(base)

	for _, part := range parts[1:] {
		if strings.HasPrefix(part, "-") ||
			(len([]rune(part)) <= suffixFragmentMax && !strings.Contains(part, " ")) {
			frag := strings.TrimPrefix(part, "-")
			candidates.add(replaceTail(base, frag))
			// Keep the raw fragment too, in case the substitution guessed wrong.
			candidates.add(part)
		} else {
			candidates.add(part)
		}
	}

	expanded := newOrderedSet()
	for _, c := range candidates.items {
		if strings.Contains(c, "(") && strings.Contains(c, ")") {
			kept := strings.NewReplacer("(", "", ")", "").Replace(c)
			expanded.add(strings.TrimSpace(whitespaceRE.ReplaceAllString(kept, " ")))
			dropped := parenGroupRE.ReplaceAllString(c, "")
			expanded.add(strings.TrimSpace(whitespaceRE.ReplaceAllString(dropped, " ")))
		} else {
			expanded.add(c)
		}
	}

	out := make([]string, 0, len(expanded.items))
	for _, c := range expanded.items {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

// replaceTail swaps the trailing len(frag) runes of base for frag.
func replaceTail(base, frag string) string {
	baseRunes := []rune(base)
	fragLen := len([]rune(frag))
	if fragLen >= len(baseRunes) {
		return frag
	}
	return string(baseRunes[:len(baseRunes)-fragLen]) + frag
}

type orderedSet struct {
	items []string
	seen  map[string]bool
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool)}
}

func (s *orderedSet) add(v string) {
	if s.seen[v] {
		return
	}
	s.seen[v] = true
	s.items = append(s.items, v)
}
