// Package keyboard defines keyboard layouts and maps physical key codes to characters.
package keyboard

import (
	"errors"
	"fmt"
	"strings"
)

// Layout identifies a keyboard layout.
type Layout string

// Supported layouts.
const (
	QWERTY  Layout = "qwerty"
	Colemak Layout = "colemak"
	Dvorak  Layout = "dvorak"
)

// ErrUnknownLayout is returned when a layout name is not supported.
var ErrUnknownLayout = errors.New("unknown layout")

var layoutOrder = []Layout{QWERTY, Colemak, Dvorak}

// Key is a single key as drawn on a layout. Code is the key identifier in the
// layout's own code space; IsSpecial keys never produce typed output.
type Key struct {
	Character string
	Code      string
	IsSpecial bool
}

// RowCount is the number of rows in every layout.
const RowCount = 5

// Rows holds the keys of a layout, top row first.
type Rows [RowCount][]Key

// ParseLayout validates a layout name. Matching ignores case and surrounding space.
func ParseLayout(name string) (Layout, error) {
	l := Layout(strings.ToLower(strings.TrimSpace(name)))
	if !l.Valid() {
		return "", fmt.Errorf("%w %q (available: %s)", ErrUnknownLayout, name, strings.Join(LayoutNames(), ", "))
	}
	return l, nil
}

// Valid reports whether l is a supported layout.
func (l Layout) Valid() bool {
	_, ok := layoutRows[l]
	return ok
}

// Next returns the layout following l in display order, wrapping around.
func (l Layout) Next() Layout {
	for i, candidate := range layoutOrder {
		if candidate == l {
			return layoutOrder[(i+1)%len(layoutOrder)]
		}
	}
	return layoutOrder[0]
}

// String implements fmt.Stringer.
func (l Layout) String() string {
	return string(l)
}

// Layouts returns the supported layouts in display order.
func Layouts() []Layout {
	return append([]Layout(nil), layoutOrder...)
}

// LayoutNames returns the supported layout names in display order.
func LayoutNames() []string {
	names := make([]string, len(layoutOrder))
	for i, l := range layoutOrder {
		names[i] = string(l)
	}
	return names
}

// RowsFor returns a copy of the rows for a layout.
func RowsFor(l Layout) (Rows, bool) {
	src, ok := layoutRows[l]
	if !ok {
		return Rows{}, false
	}
	var out Rows
	for i, row := range src {
		out[i] = append([]Key(nil), row...)
	}
	return out, true
}

// IsSpecial reports whether code names a non-printing key on the layout.
func IsSpecial(code string, l Layout) bool {
	idx, ok := layoutIndex[l]
	if !ok {
		return false
	}
	key, ok := idx[code]
	return ok && key.IsSpecial
}

func k(char, code string) Key {
	return Key{Character: char, Code: code}
}

func special(label, code string) Key {
	return Key{Character: label, Code: code, IsSpecial: true}
}

var qwertyRows = Rows{
	{
		k("`", "Backquote"), k("1", "Digit1"), k("2", "Digit2"), k("3", "Digit3"),
		k("4", "Digit4"), k("5", "Digit5"), k("6", "Digit6"), k("7", "Digit7"),
		k("8", "Digit8"), k("9", "Digit9"), k("0", "Digit0"), k("-", "Minus"),
		k("=", "Equal"), special("Backspace", "Backspace"),
	},
	{
		special("Tab", "Tab"), k("Q", "KeyQ"), k("W", "KeyW"), k("E", "KeyE"),
		k("R", "KeyR"), k("T", "KeyT"), k("Y", "KeyY"), k("U", "KeyU"),
		k("I", "KeyI"), k("O", "KeyO"), k("P", "KeyP"), k("[", "BracketLeft"),
		k("]", "BracketRight"), k("\\", "Backslash"),
	},
	{
		special("Caps", "CapsLock"), k("A", "KeyA"), k("S", "KeyS"), k("D", "KeyD"),
		k("F", "KeyF"), k("G", "KeyG"), k("H", "KeyH"), k("J", "KeyJ"),
		k("K", "KeyK"), k("L", "KeyL"), k(";", "Semicolon"), k("'", "Quote"),
		special("Enter", "Enter"),
	},
	{
		special("Shift", "ShiftLeft"), k("Z", "KeyZ"), k("X", "KeyX"), k("C", "KeyC"),
		k("V", "KeyV"), k("B", "KeyB"), k("N", "KeyN"), k("M", "KeyM"),
		k(",", "Comma"), k(".", "Period"), k("/", "Slash"), special("Shift", "ShiftRight"),
	},
	{
		special("Ctrl", "ControlLeft"), special("Alt", "AltLeft"), special("Meta", "MetaLeft"),
		k("Space", "Space"),
		special("Alt", "AltRight"), special("Meta", "MetaRight"), special("Fn", "FnRight"),
		special("Ctrl", "ControlRight"),
	},
}

// Colemak keys carry the QWERTY code of the letter they show, so a physical
// code remapped from QWERTY lands on the matching label.
var colemakRows = Rows{
	qwertyRows[0],
	{
		special("Tab", "Tab"), k("Q", "KeyQ"), k("W", "KeyW"), k("F", "KeyF"),
		k("P", "KeyP"), k("G", "KeyG"), k("J", "KeyJ"), k("L", "KeyL"),
		k("U", "KeyU"), k("Y", "KeyY"), k(";", "Semicolon"), k("[", "BracketLeft"),
		k("]", "BracketRight"), k("\\", "Backslash"),
	},
	{
		special("Caps", "CapsLock"), k("A", "KeyA"), k("R", "KeyR"), k("S", "KeyS"),
		k("T", "KeyT"), k("D", "KeyD"), k("H", "KeyH"), k("N", "KeyN"),
		k("E", "KeyE"), k("I", "KeyI"), k("O", "KeyO"), k("'", "Quote"),
		special("Enter", "Enter"),
	},
	{
		special("Shift", "ShiftLeft"), k("Z", "KeyZ"), k("X", "KeyX"), k("C", "KeyC"),
		k("V", "KeyV"), k("B", "KeyB"), k("K", "KeyK"), k("M", "KeyM"),
		k(",", "Comma"), k(".", "Period"), k("/", "Slash"), special("Shift", "ShiftRight"),
	},
	qwertyRows[4],
}

// Dvorak keys keep their physical codes; characters come from dvorakChars.
var dvorakRows = Rows{
	{
		k("`", "Backquote"), k("1", "Digit1"), k("2", "Digit2"), k("3", "Digit3"),
		k("4", "Digit4"), k("5", "Digit5"), k("6", "Digit6"), k("7", "Digit7"),
		k("8", "Digit8"), k("9", "Digit9"), k("0", "Digit0"), k("[", "Minus"),
		k("]", "Equal"), special("Backspace", "Backspace"),
	},
	{
		special("Tab", "Tab"), k("'", "KeyQ"), k(",", "KeyW"), k(".", "KeyE"),
		k("P", "KeyR"), k("Y", "KeyT"), k("F", "KeyY"), k("G", "KeyU"),
		k("C", "KeyI"), k("R", "KeyO"), k("L", "KeyP"), k("/", "BracketLeft"),
		k("=", "BracketRight"), k("\\", "Backslash"),
	},
	{
		special("Caps", "CapsLock"), k("A", "KeyA"), k("O", "KeyS"), k("E", "KeyD"),
		k("U", "KeyF"), k("I", "KeyG"), k("D", "KeyH"), k("H", "KeyJ"),
		k("T", "KeyK"), k("N", "KeyL"), k("S", "Semicolon"), k("-", "Quote"),
		special("Enter", "Enter"),
	},
	{
		special("Shift", "ShiftLeft"), k(";", "KeyZ"), k("Q", "KeyX"), k("J", "KeyC"),
		k("K", "KeyV"), k("X", "KeyB"), k("B", "KeyN"), k("M", "KeyM"),
		k("W", "Comma"), k("V", "Period"), k("Z", "Slash"), special("Shift", "ShiftRight"),
	},
	qwertyRows[4],
}

var layoutRows = map[Layout]Rows{
	QWERTY:  qwertyRows,
	Colemak: colemakRows,
	Dvorak:  dvorakRows,
}

var layoutIndex = buildIndex()

func buildIndex() map[Layout]map[string]Key {
	out := make(map[Layout]map[string]Key, len(layoutRows))
	for l, rows := range layoutRows {
		idx := map[string]Key{}
		for _, row := range rows {
			for _, key := range row {
				idx[key.Code] = key
			}
		}
		out[l] = idx
	}
	return out
}
