package wordlist

import "testing"

func TestFilterEnglishASCII(t *testing.T) {
	filter := FilterForLang("en")
	if !filter("hello") {
		t.Fatalf("expected hello to pass english filter")
	}
	for _, word := range []string{"résumé", "naïve", "don’t", "co-op"} {
		if filter(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestTypeable(t *testing.T) {
	filter := FilterForLang("de")
	for _, word := range []string{"co-op", "Hello!", "a1"} {
		if !filter(word) {
			t.Fatalf("expected %q to be typeable", word)
		}
	}
	for _, word := range []string{"", "straße", "two words"} {
		if filter(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}
