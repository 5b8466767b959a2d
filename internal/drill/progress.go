package drill

import (
	"github.com/jsvoboda/lexidrill/internal/vocab"
)

// Status is the per-word mastery state within one session.
type Status int

const (
	StatusUnseen Status = iota
	StatusCorrect
	StatusMistake
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusCorrect:
		return "correct"
	case StatusMistake:
		return "mistake"
	case StatusUnknown:
		return "unknown"
	default:
		return "unseen"
	}
}

// SlotUnassigned marks a word that has not yet been presented.
const SlotUnassigned = -1

// Progress tracks one word's state for the lifetime of a session.
type Progress struct {
	WordID   string
	Status   Status
	Attempts int

	// Slot is the word's fixed position in the visual progress row.
	// SlotUnassigned until the word is first selected; assigned once and
	// never reused by another word.
	Slot int
}

// Tracker owns the progress entries for a session's word pool.
type Tracker struct {
	order    []string
	entries  map[string]*Progress
	nextSlot int
}

// NewTracker initialises progress for the pool: everything unseen, zero
// attempts, no slot.
func NewTracker(pool []vocab.Word) *Tracker {
	t := &Tracker{
		order:   make([]string, 0, len(pool)),
		entries: make(map[string]*Progress, len(pool)),
	}
	for _, w := range pool {
		if _, dup := t.entries[w.ID]; dup {
			continue
		}
		t.order = append(t.order, w.ID)
		t.entries[w.ID] = &Progress{WordID: w.ID, Slot: SlotUnassigned}
	}
	return t
}

// Get returns the entry for id, or nil if the word is not in the pool.
func (t *Tracker) Get(id string) *Progress {
	return t.entries[id]
}

// Order returns word ids in pool order.
func (t *Tracker) Order() []string {
	return t.order
}

// Len returns the number of tracked words.
func (t *Tracker) Len() int {
	return len(t.order)
}

// Record applies a submission outcome: status becomes the outcome and the
// attempt counter goes up by one. Returns the updated entry, or nil for an
// unknown id.
func (t *Tracker) Record(id string, outcome Status) *Progress {
	p := t.entries[id]
	if p == nil || outcome == StatusUnseen {
		return p
	}
	p.Status = outcome
	p.Attempts++
	return p
}

// AssignSlot gives the word the next free slot index, once. The counter is
// shared across the whole session, so slots fill strictly left to right in
// first-seen order no matter how selection jumps around afterwards.
func (t *Tracker) AssignSlot(id string) int {
	p := t.entries[id]
	if p == nil {
		return SlotUnassigned
	}
	if p.Slot == SlotUnassigned {
		p.Slot = t.nextSlot
		t.nextSlot++
	}
	return p.Slot
}

// AllCorrect reports whether every word has been answered correctly,
// which is the session's termination condition.
func (t *Tracker) AllCorrect() bool {
	for _, p := range t.entries {
		if p.Status != StatusCorrect {
			return false
		}
	}
	return len(t.entries) > 0
}
