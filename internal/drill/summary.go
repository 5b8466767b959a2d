package drill

// Summary is what a completed session reports to the history sink:
// how many distinct words were mastered, how many submissions it took,
// and which words were ever answered wrong or skipped.
type Summary struct {
	Words    int
	Attempts int
	Mistakes []string
}

// Summary builds the completion report. Valid once the session has
// completed; before that it reflects the state so far.
func (s *Session) Summary() Summary {
	mistakes := make([]string, len(s.mistakeIDs))
	copy(mistakes, s.mistakeIDs)
	return Summary{
		Words:    s.tracker.Len(),
		Attempts: s.totalAttempts,
		Mistakes: mistakes,
	}
}
