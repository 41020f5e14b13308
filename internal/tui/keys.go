package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/keytype/internal/keyboard"
)

type keyMap struct {
	Quit     key.Binding
	Restart  key.Binding
	Layout   key.Binding
	Keyboard key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		// Restart is handled by the trainer; the binding only feeds help.
		Restart: key.NewBinding(
			key.WithKeys("esc", "ctrl+r", "ctrl+n"),
			key.WithHelp("esc/ctrl+r", "new words"),
		),
		Layout: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next layout"),
		),
		Keyboard: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "toggle keyboard"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Restart, k.Layout, k.Keyboard, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// eventsFromKey turns a terminal key message into keydown events. Terminals
// report characters rather than key positions, so runes are mapped back to
// the QWERTY key that types them. Runes with no such key produce no event.
func eventsFromKey(msg tea.KeyMsg) []keyboard.Event {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return []keyboard.Event{{Key: "Backspace", Code: "Backspace"}}
	case tea.KeyEsc:
		return []keyboard.Event{{Key: "Escape", Code: "Escape"}}
	case tea.KeySpace:
		return []keyboard.Event{{Key: " ", Code: "Space", Alt: msg.Alt}}
	case tea.KeyTab, tea.KeyEnter:
		return nil
	case tea.KeyRunes:
		if msg.Paste {
			return nil
		}
		events := make([]keyboard.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			char := string(r)
			code, shift, ok := keyboard.CodeForCharacter(char)
			if !ok {
				continue
			}
			events = append(events, keyboard.Event{Key: char, Code: code, Shift: shift, Alt: msg.Alt})
		}
		return events
	}
	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		letter := rune('a' + int(msg.Type-tea.KeyCtrlA))
		code, _, _ := keyboard.CodeForCharacter(string(letter))
		return []keyboard.Event{{Key: string(letter), Code: code, Ctrl: true}}
	}
	return nil
}
