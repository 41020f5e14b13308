package keyboard

// KeyMap translates key codes between two layouts that share key positions.
type KeyMap map[string]string

// charPair holds the unshifted and shifted character of a key.
type charPair [2]string

var qwertyChars = map[string]charPair{
	"Backquote": {"`", "~"},
	"Digit1":    {"1", "!"},
	"Digit2":    {"2", "@"},
	"Digit3":    {"3", "#"},
	"Digit4":    {"4", "$"},
	"Digit5":    {"5", "%"},
	"Digit6":    {"6", "^"},
	"Digit7":    {"7", "&"},
	"Digit8":    {"8", "*"},
	"Digit9":    {"9", "("},
	"Digit0":    {"0", ")"},
	"Minus":     {"-", "_"},
	"Equal":     {"=", "+"},

	"BracketLeft":  {"[", "{"},
	"BracketRight": {"]", "}"},
	"Backslash":    {"\\", "|"},
	"Semicolon":    {";", ":"},
	"Quote":        {"'", "\""},
	"Comma":        {",", "<"},
	"Period":       {".", ">"},
	"Slash":        {"/", "?"},
	"Space":        {" ", " "},

	"KeyA": {"a", "A"},
	"KeyB": {"b", "B"},
	"KeyC": {"c", "C"},
	"KeyD": {"d", "D"},
	"KeyE": {"e", "E"},
	"KeyF": {"f", "F"},
	"KeyG": {"g", "G"},
	"KeyH": {"h", "H"},
	"KeyI": {"i", "I"},
	"KeyJ": {"j", "J"},
	"KeyK": {"k", "K"},
	"KeyL": {"l", "L"},
	"KeyM": {"m", "M"},
	"KeyN": {"n", "N"},
	"KeyO": {"o", "O"},
	"KeyP": {"p", "P"},
	"KeyQ": {"q", "Q"},
	"KeyR": {"r", "R"},
	"KeyS": {"s", "S"},
	"KeyT": {"t", "T"},
	"KeyU": {"u", "U"},
	"KeyV": {"v", "V"},
	"KeyW": {"w", "W"},
	"KeyX": {"x", "X"},
	"KeyY": {"y", "Y"},
	"KeyZ": {"z", "Z"},
}

var dvorakChars = map[string]charPair{
	"Backquote": {"`", "~"},
	"Digit1":    {"1", "!"},
	"Digit2":    {"2", "@"},
	"Digit3":    {"3", "#"},
	"Digit4":    {"4", "$"},
	"Digit5":    {"5", "%"},
	"Digit6":    {"6", "^"},
	"Digit7":    {"7", "&"},
	"Digit8":    {"8", "*"},
	"Digit9":    {"9", "("},
	"Digit0":    {"0", ")"},
	"Minus":     {"[", "{"},
	"Equal":     {"]", "}"},

	"KeyQ":         {"'", "\""},
	"KeyW":         {",", "<"},
	"KeyE":         {".", ">"},
	"KeyR":         {"p", "P"},
	"KeyT":         {"y", "Y"},
	"KeyY":         {"f", "F"},
	"KeyU":         {"g", "G"},
	"KeyI":         {"c", "C"},
	"KeyO":         {"r", "R"},
	"KeyP":         {"l", "L"},
	"BracketLeft":  {"/", "?"},
	"BracketRight": {"=", "+"},
	"Backslash":    {"\\", "|"},

	"KeyA":      {"a", "A"},
	"KeyS":      {"o", "O"},
	"KeyD":      {"e", "E"},
	"KeyF":      {"u", "U"},
	"KeyG":      {"i", "I"},
	"KeyH":      {"d", "D"},
	"KeyJ":      {"h", "H"},
	"KeyK":      {"t", "T"},
	"KeyL":      {"n", "N"},
	"Semicolon": {"s", "S"},
	"Quote":     {"-", "_"},

	"KeyZ":   {";", ":"},
	"KeyX":   {"q", "Q"},
	"KeyC":   {"j", "J"},
	"KeyV":   {"k", "K"},
	"KeyB":   {"x", "X"},
	"KeyN":   {"b", "B"},
	"KeyM":   {"m", "M"},
	"Comma":  {"w", "W"},
	"Period": {"v", "V"},
	"Slash":  {"z", "Z"},

	"Space": {" ", " "},
}

var qwertyToColemak = KeyMap{
	"KeyE":      "KeyF",
	"KeyR":      "KeyP",
	"KeyT":      "KeyG",
	"KeyY":      "KeyJ",
	"KeyU":      "KeyL",
	"KeyI":      "KeyU",
	"KeyO":      "KeyY",
	"KeyP":      "Semicolon",
	"KeyS":      "KeyR",
	"KeyD":      "KeyS",
	"KeyF":      "KeyT",
	"KeyG":      "KeyD",
	"KeyJ":      "KeyN",
	"KeyK":      "KeyE",
	"KeyL":      "KeyI",
	"Semicolon": "KeyO",
	"KeyN":      "KeyK",
}

var colemakToQwerty = invert(qwertyToColemak)

type layoutPair struct {
	from Layout
	to   Layout
}

// Only layouts sharing QWERTY key positions take part in code remapping.
var keyMaps = map[layoutPair]KeyMap{
	{from: QWERTY, to: Colemak}: qwertyToColemak,
	{from: Colemak, to: QWERTY}: colemakToQwerty,
}

func invert(m KeyMap) KeyMap {
	out := make(KeyMap, len(m))
	for from, to := range m {
		out[to] = from
	}
	return out
}

// KeyMapFor returns a copy of the directional remap table between two layouts.
func KeyMapFor(from, to Layout) (KeyMap, bool) {
	src, ok := keyMaps[layoutPair{from: from, to: to}]
	if !ok {
		return nil, false
	}
	out := make(KeyMap, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out, true
}
