package vocab

// MatchResult classifies an answer against a candidate set.
type MatchResult int

const (
	Rejected MatchResult = iota
	AcceptedExact
	AcceptedTypo
)

func (r MatchResult) Accepted() bool {
	return r != Rejected
}

// TypoBudget returns the edit-distance tolerance for a candidate of the
// given rune length: long answers forgive two slips, medium ones a single
// slip, and short answers must match exactly.
func TypoBudget(length int) int {
	switch {
	case length > 8:
		return 2
	case length > 3:
		return 1
	default:
		return 0
	}
}

// Match decides whether input is an acceptable rendition of any candidate.
// Both sides are normalised; an exact hit wins over a typo hit.
func Match(input string, candidates []string) MatchResult {
	normalized := Normalize(input)

	normCandidates := make([]string, 0, len(candidates))
	for _, c := range candidates {
		normCandidates = append(normCandidates, Normalize(c))
	}

	for _, c := range normCandidates {
		if c == normalized {
			return AcceptedExact
		}
	}

	for _, c := range normCandidates {
		dist := Distance(c, normalized)
		if dist > 0 && dist <= TypoBudget(len([]rune(c))) {
			return AcceptedTypo
		}
	}

	return Rejected
}
