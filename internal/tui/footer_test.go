package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/keytype/internal/keyboard"
	"github.com/verte-zerg/keytype/internal/stats"
)

func TestRenderFooterFormats(t *testing.T) {
	m := &Model{layout: keyboard.Colemak, history: []float64{40, 55}}
	s := sessionWith([]string{"a", "b", "c", "d"}, []string{"a", "b"}, 2)
	s.Stats = stats.Stats{WPM: 72, Accuracy: 97.8}

	out := m.renderFooter(s)
	if !containsAll(out, []string{"Layout colemak", "Progress 50%", "72 WPM", "97.8%", "Last 55 WPM"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestRenderFooterNotice(t *testing.T) {
	m := &Model{layout: keyboard.QWERTY, notice: "failed to save layout"}
	out := m.renderFooter(sessionWith(nil, nil, 0))
	if !containsAll(out, []string{"Progress 0%", "failed to save layout"}) {
		t.Fatalf("footer missing notice: %s", out)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
