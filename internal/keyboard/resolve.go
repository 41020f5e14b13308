package keyboard

// RemapKey translates code from one layout's code space to another's. Codes
// without an explicit mapping, and layout pairs without a remap table (Dvorak,
// unknown layouts), are returned unchanged.
func RemapKey(code string, from, to Layout) string {
	if from == to {
		return code
	}
	m, ok := keyMaps[layoutPair{from: from, to: to}]
	if !ok {
		return code
	}
	if mapped, ok := m[code]; ok {
		return mapped
	}
	return code
}

// ResolveCharacter returns the character produced by the physical key code
// under the layout and shift state. Special keys, unknown codes and unknown
// layouts resolve to "". Codes are case-sensitive.
func ResolveCharacter(code string, l Layout, shift bool) string {
	if !l.Valid() {
		return ""
	}
	if code == "Space" {
		return " "
	}
	if IsSpecial(code, l) {
		return ""
	}

	table := qwertyChars
	logical := code
	switch l {
	case Colemak:
		logical = RemapKey(code, QWERTY, Colemak)
	case Dvorak:
		table = dvorakChars
	}

	pair, ok := table[logical]
	if !ok {
		return ""
	}
	if shift {
		return pair[1]
	}
	return pair[0]
}

type physicalKey struct {
	code  string
	shift bool
}

var qwertyReverse = buildReverse()

func buildReverse() map[string]physicalKey {
	out := make(map[string]physicalKey, len(qwertyChars)*2)
	for code, pair := range qwertyChars {
		if code == "Space" {
			continue
		}
		out[pair[0]] = physicalKey{code: code}
		out[pair[1]] = physicalKey{code: code, shift: true}
	}
	out[" "] = physicalKey{code: "Space"}
	return out
}

// CodeForCharacter finds the QWERTY physical key and shift state that types
// char. Hosts that only receive characters use it to recover key codes.
func CodeForCharacter(char string) (code string, shift, ok bool) {
	key, ok := qwertyReverse[char]
	if !ok {
		return "", false, false
	}
	return key.code, key.shift, true
}
