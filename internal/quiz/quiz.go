// Package quiz implements the fixed-length test mode: a shuffled batch of
// questions asked exactly once each, either as free-text translation or as
// a three-option multiple choice. Unlike the marathon drill it never
// re-presents a word and applies no typo tolerance; a typed answer is
// accepted when it equals any slash-separated alternative of the expected
// text, ignoring case.
package quiz

import (
	"math/rand"
	"strings"

	"github.com/jsvoboda/lexidrill/internal/vocab"
)

// Mode selects how a question is answered.
type Mode int

const (
	ModeChoice Mode = iota
	ModeTyped
)

func (m Mode) String() string {
	if m == ModeTyped {
		return "typed"
	}
	return "choice"
}

// ParseMode maps a mode flag value to a Mode. Unknown values fall back to
// multiple choice.
func ParseMode(s string) Mode {
	if s == "typed" {
		return ModeTyped
	}
	return ModeChoice
}

// optionCount is the number of answers shown in choice mode.
const optionCount = 3

// Question is one quiz item.
type Question struct {
	Word    vocab.Word
	Prompt  string
	Answer  string
	Options []string // populated in choice mode
}

// Build creates the question list for a batch of target words. In choice
// mode, distractors are drawn from the distractor pool (typically a random
// sample of the whole vocabulary), skipping the target itself.
func Build(targets, distractors []vocab.Word, dir vocab.Direction, mode Mode, rng *rand.Rand) []Question {
	questions := make([]Question, 0, len(targets))
	for _, w := range targets {
		q := Question{
			Word:   w,
			Prompt: vocab.CleanForDisplay(dir.Prompt(w)),
			Answer: dir.Answer(w),
		}
		if mode == ModeChoice {
			q.Options = buildOptions(q, distractors, dir, rng)
		}
		questions = append(questions, q)
	}
	return questions
}

func buildOptions(q Question, distractors []vocab.Word, dir vocab.Direction, rng *rand.Rand) []string {
	options := []string{vocab.CleanForDisplay(q.Answer)}

	perm := rng.Perm(len(distractors))
	for _, i := range perm {
		if len(options) == optionCount {
			break
		}
		d := distractors[i]
		if d.ID == q.Word.ID {
			continue
		}
		text := vocab.CleanForDisplay(dir.Answer(d))
		if text == "" || contains(options, text) {
			continue
		}
		options = append(options, text)
	}

	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// CheckTyped reports whether a typed answer matches any slash-separated
// alternative of the expected text, case-insensitively.
func CheckTyped(answer string, q Question) bool {
	answer = strings.TrimSpace(answer)
	for _, alt := range strings.Split(q.Answer, "/") {
		if strings.EqualFold(strings.TrimSpace(alt), answer) {
			return true
		}
	}
	return false
}

// CheckChoice reports whether a picked option is the expected answer.
func CheckChoice(option string, q Question) bool {
	return option == vocab.CleanForDisplay(q.Answer)
}

// Quiz tracks one run through a question list.
type Quiz struct {
	Direction vocab.Direction
	Mode      Mode

	questions []Question
	index     int
	score     int
	mistakes  []string
	finished  bool
}

// New creates a quiz over prepared questions.
func New(questions []Question, dir vocab.Direction, mode Mode) *Quiz {
	return &Quiz{Direction: dir, Mode: mode, questions: questions}
}

// Len returns the number of questions.
func (q *Quiz) Len() int {
	return len(q.questions)
}

// Index returns the zero-based position of the current question.
func (q *Quiz) Index() int {
	return q.index
}

// Score returns the number of correct answers so far.
func (q *Quiz) Score() int {
	return q.score
}

// Current returns the active question; ok is false once the quiz is done.
func (q *Quiz) Current() (Question, bool) {
	if q.finished || q.index >= len(q.questions) {
		return Question{}, false
	}
	return q.questions[q.index], true
}

// Answer grades the response for the current question and reports whether
// it was correct.
func (q *Quiz) Answer(response string) bool {
	current, ok := q.Current()
	if !ok {
		return false
	}

	var correct bool
	if q.Mode == ModeTyped {
		correct = CheckTyped(response, current)
	} else {
		correct = CheckChoice(response, current)
	}

	if correct {
		q.score++
	} else {
		q.mistakes = append(q.mistakes, current.Word.ID)
	}
	return correct
}

// Skip marks the current question as missed.
func (q *Quiz) Skip() {
	if current, ok := q.Current(); ok {
		q.mistakes = append(q.mistakes, current.Word.ID)
	}
}

// Next moves to the following question; reports false when the quiz is
// finished.
func (q *Quiz) Next() bool {
	q.index++
	if q.index >= len(q.questions) {
		q.finished = true
	}
	return !q.finished
}

// Finish ends the quiz early (the "finish & save" action).
func (q *Quiz) Finish() {
	q.finished = true
}

// Finished reports whether the quiz is over.
func (q *Quiz) Finished() bool {
	return q.finished
}

// Mistakes returns the ids of missed words.
func (q *Quiz) Mistakes() []string {
	out := make([]string, len(q.mistakes))
	copy(out, q.mistakes)
	return out
}

// Attempts returns the number of graded questions (score plus mistakes).
func (q *Quiz) Attempts() int {
	return q.score + len(q.mistakes)
}

// HistoryType is the type tag persisted with quiz results,
// e.g. "to-source-choice".
func (q *Quiz) HistoryType() string {
	return q.Direction.String() + "-" + q.Mode.String()
}
