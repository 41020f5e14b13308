// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/keytype/internal/feedback"
	"github.com/verte-zerg/keytype/internal/typing"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledRunes renders every target character of the session with its
// feedback class. Words are separated by single spaces; the cursor sits on
// the next untyped character of the current word, or on the following space
// once the word is complete.
func buildStyledRunes(s typing.Session) []styledRune {
	out := make([]styledRune, 0, len(s.Text()))
	for i, ws := range s.Words {
		if i > 0 {
			prev := s.Words[i-1]
			atCursor := i-1 == s.CurrentIndex && prev.Complete()
			out = append(out, newStyledRune(' ', pendingStyle, atCursor))
		}
		current := i == s.CurrentIndex
		cursorChar := -1
		if current {
			cursorChar = utf8.RuneCountInString(ws.Typed)
		}
		classes := feedback.Word(ws, i, s.CurrentIndex)
		for j, target := range []rune(ws.Word) {
			style := styleFor(classes[j], current)
			out = append(out, newStyledRune(target, style, j == cursorChar))
		}
	}
	return out
}

func styleFor(class feedback.Class, currentWord bool) lipgloss.Style {
	switch class {
	case feedback.Correct:
		return correctStyle
	case feedback.Incorrect:
		return incorrectStyle
	}
	if currentWord {
		return currentWordStyle
	}
	return pendingStyle
}

func newStyledRune(r rune, style lipgloss.Style, cursor bool) styledRune {
	if cursor {
		style = style.Underline(true)
	}
	return styledRune{
		s:       style.Render(string(r)),
		width:   runewidth.RuneWidth(r),
		isSpace: r == ' ',
	}
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
