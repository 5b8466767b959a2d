package vocab

// Word is a single vocabulary entry. The word and translation fields carry
// the raw wordlist text, which may embed pronunciation (/.../), part-of-speech
// tags, slash-separated alternatives and optional parenthesised fragments.
type Word struct {
	ID            string `db:"id" json:"id"`
	Word          string `db:"word" json:"word"`
	Translation   string `db:"translation" json:"translation"`
	POS           string `db:"pos" json:"pos"`
	Pronunciation string `db:"pronunciation" json:"pronunciation"`
	Example       string `db:"example" json:"example"`
	Unit          string `db:"unit" json:"unit"`
	Section       string `db:"section" json:"section"`
	Lang          string `db:"lang" json:"lang"`
}

// Valid reports whether the entry carries both sides of the translation pair.
func (w Word) Valid() bool {
	return CleanForDisplay(w.Word) != "" && CleanForDisplay(w.Translation) != ""
}

// Direction selects which side of a word pair is the prompt and which is
// the expected answer.
type Direction int

const (
	// ToSource prompts with the translation and expects the source-language word.
	ToSource Direction = iota
	// ToTarget prompts with the source-language word and expects the translation.
	ToTarget
)

// Prompt returns the side of the pair shown to the learner.
func (d Direction) Prompt(w Word) string {
	if d == ToTarget {
		return w.Word
	}
	return w.Translation
}

// Answer returns the answer-bearing side of the pair.
func (d Direction) Answer(w Word) string {
	if d == ToTarget {
		return w.Translation
	}
	return w.Word
}

func (d Direction) String() string {
	if d == ToTarget {
		return "to-target"
	}
	return "to-source"
}

// ParseDirection maps a direction flag value to a Direction.
// Unknown values fall back to ToSource.
func ParseDirection(s string) Direction {
	if s == "to-target" {
		return ToTarget
	}
	return ToSource
}
