package tui

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/keytype/internal/keyboard"
)

const spaceKeyWidth = 24

var (
	keyCapStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#B8B8B8")).
			Padding(0, 1)
	specialKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E6E6E")).
			Padding(0, 1)
	activeKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1E1E1E")).
			Background(lipgloss.Color("#C89A3A")).
			Padding(0, 1)
)

// activeKeyCode converts the physical code of the last pressed key into the
// code space of the layout's rows.
func activeKeyCode(layout keyboard.Layout, physical string) string {
	if physical == "" {
		return ""
	}
	return keyboard.RemapKey(physical, keyboard.QWERTY, layout)
}

// RenderKeyboard draws the layout row by row. The key typed by the physical
// code is highlighted when color is enabled, bracketed otherwise.
func RenderKeyboard(layout keyboard.Layout, physical string, color bool) string {
	rows, ok := keyboard.RowsFor(layout)
	if !ok {
		return ""
	}
	active := activeKeyCode(layout, physical)
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for _, k := range row {
			cells = append(cells, renderKeyCap(k, k.Code == active, color))
		}
		if color {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		} else {
			lines = append(lines, strings.Join(cells, " "))
		}
	}
	if color {
		return lipgloss.JoinVertical(lipgloss.Center, lines...)
	}
	return strings.Join(lines, "\n")
}

func renderKeyCap(k keyboard.Key, active, color bool) string {
	label := k.Character
	if k.Code == "Space" {
		label = runewidth.FillRight("", spaceKeyWidth)
		if !color {
			label = runewidth.FillRight("Space", spaceKeyWidth)
		}
	}
	if !color {
		if active {
			return "[" + label + "]"
		}
		return label
	}
	switch {
	case active:
		return activeKeyStyle.Render(label)
	case k.IsSpecial:
		return specialKeyStyle.Render(label)
	default:
		return keyCapStyle.Render(label)
	}
}

// ShouldUseColor reports whether output to w should be styled.
func ShouldUseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
