package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/keytype/internal/keyboard"
)

func TestEventsFromKey(t *testing.T) {
	cases := []struct {
		name string
		msg  tea.KeyMsg
		want []keyboard.Event
	}{
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, []keyboard.Event{{Key: "Backspace", Code: "Backspace"}}},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, []keyboard.Event{{Key: "Escape", Code: "Escape"}}},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, []keyboard.Event{{Key: " ", Code: "Space"}}},
		{"lower", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")}, []keyboard.Event{{Key: "e", Code: "KeyE"}}},
		{"upper", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("E")}, []keyboard.Event{{Key: "E", Code: "KeyE", Shift: true}}},
		{"alt", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true}, []keyboard.Event{{Key: "x", Code: "KeyX", Alt: true}}},
		{"ctrl r", tea.KeyMsg{Type: tea.KeyCtrlR}, []keyboard.Event{{Key: "r", Code: "KeyR", Ctrl: true}}},
		{"unknown rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("é")}, []keyboard.Event{}},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, nil},
		{"paste", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc"), Paste: true}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := eventsFromKey(tc.msg)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d events, got %d: %+v", len(tc.want), len(got), got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("event %d: expected %+v, got %+v", i, tc.want[i], got[i])
				}
			}
		})
	}
}
