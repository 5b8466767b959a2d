package drill

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/jsvoboda/lexidrill/internal/vocab"
)

var (
	// ErrEmptyPool means the provider returned no words; no session starts.
	ErrEmptyPool = errors.New("drill: word pool is empty")

	// ErrNoCurrentWord is an internal-consistency fault: the scheduler
	// handed out an id that is not in the pool.
	ErrNoCurrentWord = errors.New("drill: current word missing from pool")
)

// Phase is the session controller state.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseAwaitingAnswer
	PhaseShowingFeedback
	PhaseCompleted
)

// Feedback describes the outcome of one submission, for display.
type Feedback struct {
	Outcome Status
	Typo    bool

	// Answer is the display form of the expected answer.
	Answer string
}

// Session runs one marathon drill over a fixed pool. It owns all progress
// state; nothing here is shared across sessions or goroutines.
type Session struct {
	ID        string
	Direction vocab.Direction

	pool    []vocab.Word
	byID    map[string]vocab.Word
	tracker *Tracker
	rng     *rand.Rand

	currentID     string
	totalAttempts int
	mistakeIDs    []string
	mistakeSeen   map[string]bool
	lastFeedback  Feedback
	phase         Phase
}

// NewSession builds a session over pool and selects the first word.
// Returns ErrEmptyPool when there is nothing to drill.
func NewSession(pool []vocab.Word, dir vocab.Direction, rng *rand.Rand) (*Session, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}

	s := &Session{
		ID:          uuid.NewString(),
		Direction:   dir,
		pool:        pool,
		byID:        make(map[string]vocab.Word, len(pool)),
		tracker:     NewTracker(pool),
		rng:         rng,
		mistakeSeen: make(map[string]bool),
		phase:       PhaseLoading,
	}
	for _, w := range pool {
		s.byID[w.ID] = w
	}

	next, ok := SelectNext(s.tracker, "", s.rng)
	if !ok {
		return nil, ErrEmptyPool
	}
	s.present(next)
	return s, nil
}

func (s *Session) present(id string) {
	s.tracker.AssignSlot(id)
	s.currentID = id
	s.phase = PhaseAwaitingAnswer
}

// Phase returns the controller state.
func (s *Session) Phase() Phase {
	return s.phase
}

// Current returns the word being presented.
func (s *Session) Current() (vocab.Word, error) {
	w, ok := s.byID[s.currentID]
	if !ok {
		return vocab.Word{}, fmt.Errorf("%w: %q", ErrNoCurrentWord, s.currentID)
	}
	return w, nil
}

// Prompt returns the display form of the current word's question side.
func (s *Session) Prompt() string {
	w, err := s.Current()
	if err != nil {
		return ""
	}
	return vocab.CleanForDisplay(s.Direction.Prompt(w))
}

// Progress exposes the tracker for rendering the slot row.
func (s *Session) Progress() *Tracker {
	return s.tracker
}

// CurrentID returns the id of the word being presented.
func (s *Session) CurrentID() string {
	return s.currentID
}

// TotalAttempts returns the number of submissions so far.
func (s *Session) TotalAttempts() int {
	return s.totalAttempts
}

// LastFeedback returns the feedback for the most recent submission.
func (s *Session) LastFeedback() Feedback {
	return s.lastFeedback
}

// Submit grades a typed answer for the current word and moves the session
// into the feedback phase.
func (s *Session) Submit(answer string) (Feedback, error) {
	return s.record(answer, false)
}

// Skip records an "I don't know" for the current word. It still counts as
// an attempt and marks the word as a mistake for history purposes.
func (s *Session) Skip() (Feedback, error) {
	return s.record("", true)
}

func (s *Session) record(answer string, skip bool) (Feedback, error) {
	if s.phase != PhaseAwaitingAnswer {
		return Feedback{}, fmt.Errorf("drill: submit in phase %d", s.phase)
	}
	w, err := s.Current()
	if err != nil {
		return Feedback{}, err
	}

	expected := s.Direction.Answer(w)

	outcome := StatusUnknown
	typo := false
	if !skip {
		switch vocab.Match(answer, vocab.Variations(expected)) {
		case vocab.AcceptedExact:
			outcome = StatusCorrect
		case vocab.AcceptedTypo:
			outcome = StatusCorrect
			typo = true
		default:
			outcome = StatusMistake
		}
	}

	s.tracker.Record(w.ID, outcome)
	s.totalAttempts++
	if outcome == StatusMistake || outcome == StatusUnknown {
		if !s.mistakeSeen[w.ID] {
			s.mistakeSeen[w.ID] = true
			s.mistakeIDs = append(s.mistakeIDs, w.ID)
		}
	}

	s.lastFeedback = Feedback{
		Outcome: outcome,
		Typo:    typo,
		Answer:  vocab.CleanForDisplay(expected),
	}
	s.phase = PhaseShowingFeedback
	return s.lastFeedback, nil
}

// Advance moves past the feedback screen: either the next word is selected
// or the session completes. Reports true when the session is done.
func (s *Session) Advance() (bool, error) {
	if s.phase != PhaseShowingFeedback {
		return false, fmt.Errorf("drill: advance in phase %d", s.phase)
	}

	next, ok := SelectNext(s.tracker, s.currentID, s.rng)
	if !ok {
		s.phase = PhaseCompleted
		return true, nil
	}
	if _, known := s.byID[next]; !known {
		return false, fmt.Errorf("%w: %q", ErrNoCurrentWord, next)
	}
	s.present(next)
	return false, nil
}

// Completed reports whether every word has been mastered.
func (s *Session) Completed() bool {
	return s.phase == PhaseCompleted
}
