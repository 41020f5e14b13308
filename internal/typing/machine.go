package typing

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/verte-zerg/keytype/internal/stats"
)

// Sampler provides fresh target words.
type Sampler interface {
	Sample(count int) []string
}

// Machine applies typing transitions to sessions.
type Machine struct {
	sampler Sampler
	count   int
	now     func() time.Time
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock sets the clock used for statistics timing.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		m.now = now
	}
}

// NewMachine returns a Machine drawing count words from sampler on regenerate.
// A non-positive count falls back to DefaultWordCount.
func NewMachine(sampler Sampler, count int, opts ...Option) *Machine {
	if count <= 0 {
		count = DefaultWordCount
	}
	m := &Machine{sampler: sampler, count: count, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetWords starts a session over the given words.
func (m *Machine) SetWords(words []string) Session {
	return NewSession(words)
}

// Regenerate starts a session over freshly sampled words.
func (m *Machine) Regenerate() Session {
	if m.sampler == nil {
		return NewSession(nil)
	}
	return NewSession(m.sampler.Sample(m.count))
}

// Type appends char to the current word. Empty characters, sessions without
// a current word and input longer than the target word are ignored.
func (m *Machine) Type(s Session, char string) Session {
	if char == "" {
		return s
	}
	cur, ok := s.Current()
	if !ok {
		return s
	}
	typed := cur.Typed + char
	typedLen := utf8.RuneCountInString(typed)
	target := []rune(cur.Word)
	if typedLen > len(target) {
		return s
	}

	cur.Typed = typed
	cur.IsCorrect = strings.HasPrefix(cur.Word, typed)
	next := s.withWord(cur)

	charCorrect := string(target[typedLen-1]) == char
	next.Stats, next.StartTime = stats.Update(next.Stats, next.StartTime, charCorrect, m.now())
	return next
}

// Backspace deletes the last typed character of the current word, or steps
// back to the previous word when nothing is typed yet.
func (m *Machine) Backspace(s Session) Session {
	cur, ok := s.Current()
	if !ok {
		return s
	}
	if cur.Typed == "" {
		if s.CurrentIndex > 0 {
			s.CurrentIndex--
		}
		return s
	}
	runes := []rune(cur.Typed)
	cur.Typed = string(runes[:len(runes)-1])
	// An emptied word reads as untouched, like a fresh one.
	cur.IsCorrect = cur.Typed != "" && strings.HasPrefix(cur.Word, cur.Typed)
	return s.withWord(cur)
}

// Advance moves to the next word once the current one is complete and
// correct. Completing the last word regenerates the session. Otherwise the
// session is returned unchanged.
func (m *Machine) Advance(s Session) Session {
	cur, ok := s.Current()
	if !ok {
		return s
	}
	if !cur.Complete() || !cur.IsCorrect {
		return s
	}
	if s.CurrentIndex == len(s.Words)-1 {
		return m.Regenerate()
	}
	s.CurrentIndex++
	return s
}
