// Package wordlist provides word list filtering helpers.
package wordlist

import (
	"strings"

	"github.com/verte-zerg/keytype/internal/keyboard"
)

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForLang returns a language-specific filter for word lists.
func FilterForLang(lang string) FilterFunc {
	switch strings.ToLower(lang) {
	case "en":
		return filterEnglishASCII
	default:
		return Typeable
	}
}

// Typeable reports whether every character of word can be produced by a key
// of the layout tables.
func Typeable(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if r == ' ' {
			return false
		}
		if _, _, ok := keyboard.CodeForCharacter(string(r)); !ok {
			return false
		}
	}
	return true
}

func filterEnglishASCII(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}
