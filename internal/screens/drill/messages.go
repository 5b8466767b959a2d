package drill

import (
	"github.com/jsvoboda/lexidrill/internal/vocab"
)

// poolLoadedMsg is sent when the word pool has been fetched.
type poolLoadedMsg struct {
	Words []vocab.Word
	Err   error
}

// historySavedMsg is sent when the session result write finishes.
type historySavedMsg struct {
	Err error
}
