// Package feedback classifies rendered characters for color feedback.
package feedback

import (
	"fmt"

	"github.com/verte-zerg/keytype/internal/typing"
)

// Class is the visual class of one target character.
type Class int

const (
	Pending Class = iota
	Correct
	Incorrect
)

func (c Class) String() string {
	switch c {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "pending"
	}
}

// MarshalText lets classes serialize by name.
func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a class name.
func (c *Class) UnmarshalText(text []byte) error {
	switch string(text) {
	case "pending":
		*c = Pending
	case "correct":
		*c = Correct
	case "incorrect":
		*c = Incorrect
	default:
		return fmt.Errorf("unknown class %q", text)
	}
	return nil
}

// Classify returns the class of the target character at charIndex of the
// word at wordIndex. Words after currentIndex are always pending, as are
// positions the user has not typed yet.
func Classify(ws typing.WordState, wordIndex, currentIndex, charIndex int, target rune) Class {
	if wordIndex > currentIndex || charIndex < 0 {
		return Pending
	}
	typed := []rune(ws.Typed)
	if charIndex >= len(typed) {
		return Pending
	}
	if typed[charIndex] == target {
		return Correct
	}
	return Incorrect
}

// Word classifies every character of the word at wordIndex.
func Word(ws typing.WordState, wordIndex, currentIndex int) []Class {
	target := []rune(ws.Word)
	classes := make([]Class, len(target))
	for i, r := range target {
		classes[i] = Classify(ws, wordIndex, currentIndex, i, r)
	}
	return classes
}
