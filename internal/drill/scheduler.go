package drill

import "math/rand"

// Selection weights. Words answered wrong get drilled hard; words already
// correct get the occasional re-check; the word just shown is avoided
// unless it is the only one left.
const (
	weightRetry   = 20.0
	weightRecheck = 1.0
	repeatPenalty = 0.1

	// masteryCap excludes a correct word from further selection once it has
	// been attempted this many times. Termination only needs correctness,
	// so the cap never blocks it.
	masteryCap = 3
)

type candidate struct {
	id     string
	weight float64
}

// SelectNext picks the id of the next word to present, or ok=false when the
// session is complete. previousID is the word just answered ("" for the
// first pick). The random source is injected so tests can drive the draw.
//
// Every word is shown once, in pool order, before any repeats. After that
// the pick is a cumulative-weight draw over the still-eligible words.
func SelectNext(t *Tracker, previousID string, rng *rand.Rand) (string, bool) {
	if t.Len() == 0 || t.AllCorrect() {
		return "", false
	}

	for _, id := range t.order {
		if t.entries[id].Status == StatusUnseen {
			return id, true
		}
	}

	candidates := eligible(t, previousID, true)
	if len(candidates) == 0 {
		// Only previousID remains eligible: allow the repeat, dampened.
		candidates = eligible(t, previousID, false)
	}
	if len(candidates) == 0 {
		return "", false
	}

	return draw(candidates, rng), true
}

// eligible builds the weighted candidate set, skipping correct words past
// the mastery cap. With excludePrevious the previous word is dropped
// entirely; otherwise it stays with its weight scaled down.
func eligible(t *Tracker, previousID string, excludePrevious bool) []candidate {
	var out []candidate
	for _, id := range t.order {
		p := t.entries[id]
		if p.Status == StatusCorrect && p.Attempts >= masteryCap {
			continue
		}

		var w float64
		switch p.Status {
		case StatusMistake, StatusUnknown:
			w = weightRetry
		case StatusCorrect:
			w = weightRecheck
		default:
			continue
		}

		if id == previousID {
			if excludePrevious {
				continue
			}
			w *= repeatPenalty
		}
		out = append(out, candidate{id: id, weight: w})
	}
	return out
}

func draw(candidates []candidate, rng *rand.Rand) string {
	total := 0.0
	for _, c := range candidates {
		total += c.weight
	}

	r := rng.Float64() * total
	for _, c := range candidates {
		r -= c.weight
		if r <= 0 {
			return c.id
		}
	}
	return candidates[len(candidates)-1].id
}
