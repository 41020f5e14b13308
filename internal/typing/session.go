// Package typing implements the word-by-word typing session state machine.
//
// Sessions are values. Every transition takes a Session and returns the next
// one; the word slice is copied before a word changes, so a Session handed to
// a renderer never changes underneath it.
package typing

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/verte-zerg/keytype/internal/stats"
)

// DefaultWordCount is the number of words drawn for a new session.
const DefaultWordCount = 10

// WordState tracks what has been typed for one target word.
type WordState struct {
	Word      string `json:"word"`
	Typed     string `json:"typed"`
	IsCorrect bool   `json:"isCorrect"`
}

// Complete reports whether as many characters were typed as the word has.
func (w WordState) Complete() bool {
	return utf8.RuneCountInString(w.Typed) == utf8.RuneCountInString(w.Word)
}

// Status describes what a presentation layer should show for a session.
type Status int

const (
	// StatusLoading means no word list has arrived yet.
	StatusLoading Status = iota
	// StatusEmpty means a word list arrived but it had no words.
	StatusEmpty
	// StatusActive means there is a current word to type.
	StatusActive
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusActive:
		return "active"
	default:
		return "loading"
	}
}

// Session is one run of target words. A zero StartTime means typing has not started.
type Session struct {
	Words        []WordState
	CurrentIndex int
	Stats        stats.Stats
	StartTime    time.Time

	loaded bool
}

// NewSession wraps words into fresh word states. An empty list yields a
// session whose Status is StatusEmpty.
func NewSession(words []string) Session {
	states := make([]WordState, len(words))
	for i, w := range words {
		states[i] = WordState{Word: w}
	}
	return Session{Words: states, loaded: true}
}

// Status reports whether the session is loading, empty or active.
func (s Session) Status() Status {
	switch {
	case !s.loaded:
		return StatusLoading
	case len(s.Words) == 0:
		return StatusEmpty
	default:
		return StatusActive
	}
}

// Current returns the word at CurrentIndex.
func (s Session) Current() (WordState, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Words) {
		return WordState{}, false
	}
	return s.Words[s.CurrentIndex], true
}

// Text joins the target words with single spaces.
func (s Session) Text() string {
	parts := make([]string, len(s.Words))
	for i, w := range s.Words {
		parts[i] = w.Word
	}
	return strings.Join(parts, " ")
}

// Equal reports whether s and o hold the same words, position, statistics
// and status.
func (s Session) Equal(o Session) bool {
	if s.loaded != o.loaded || s.CurrentIndex != o.CurrentIndex || s.Stats != o.Stats {
		return false
	}
	if !s.StartTime.Equal(o.StartTime) || len(s.Words) != len(o.Words) {
		return false
	}
	for i := range s.Words {
		if s.Words[i] != o.Words[i] {
			return false
		}
	}
	return true
}

// withWord returns a copy of s whose current word is replaced by w.
func (s Session) withWord(w WordState) Session {
	words := make([]WordState, len(s.Words))
	copy(words, s.Words)
	words[s.CurrentIndex] = w
	s.Words = words
	return s
}
