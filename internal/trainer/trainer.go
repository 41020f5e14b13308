// Package trainer dispatches keyboard events to a typing session.
package trainer

import (
	"strings"
	"sync"

	"github.com/verte-zerg/keytype/internal/keyboard"
	"github.com/verte-zerg/keytype/internal/typing"
)

// LayoutSource supplies the active layout. It is consulted on every event.
type LayoutSource interface {
	Layout() keyboard.Layout
}

// LayoutFunc adapts a function to LayoutSource.
type LayoutFunc func() keyboard.Layout

// Layout implements LayoutSource.
func (f LayoutFunc) Layout() keyboard.Layout { return f() }

// StaticLayout always reports the same layout.
type StaticLayout keyboard.Layout

// Layout implements LayoutSource.
func (s StaticLayout) Layout() keyboard.Layout { return keyboard.Layout(s) }

// Listener receives the session after every state change. Consumed events
// that leave the session as it was do not reach listeners.
type Listener func(typing.Session)

// Trainer owns one typing session and applies key events to it.
type Trainer struct {
	mu        sync.Mutex
	machine   *typing.Machine
	layout    LayoutSource
	session   typing.Session
	listeners map[int]Listener
	nextID    int
}

// New returns a Trainer whose session has not received words yet.
func New(machine *typing.Machine, layout LayoutSource) *Trainer {
	if layout == nil {
		layout = StaticLayout(keyboard.QWERTY)
	}
	return &Trainer{
		machine:   machine,
		layout:    layout,
		listeners: make(map[int]Listener),
	}
}

// Session returns the current session snapshot.
func (t *Trainer) Session() typing.Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session
}

// Layout returns the layout events are currently resolved against.
func (t *Trainer) Layout() keyboard.Layout {
	return t.layout.Layout()
}

// SetWords replaces the session with one over words. Listeners are always
// notified.
func (t *Trainer) SetWords(words []string) {
	t.replace(func(typing.Session) typing.Session {
		return t.machine.SetWords(words)
	})
}

// Reset replaces the session with freshly sampled words. Listeners are
// always notified.
func (t *Trainer) Reset() {
	t.replace(func(typing.Session) typing.Session {
		return t.machine.Regenerate()
	})
}

// HandleKeyDown applies one key press. It reports whether the event was
// consumed; consumed events are marked with PreventDefault. At most one
// session transition happens per call.
func (t *Trainer) HandleKeyDown(ev *keyboard.Event) bool {
	if ev == nil {
		return false
	}

	if ev.Ctrl || ev.Meta {
		ev.PreventDefault()
		if isRestartKey(ev.Key) {
			t.Reset()
		}
		return true
	}

	switch {
	case ev.Key == "Escape":
		ev.PreventDefault()
		t.Reset()
		return true
	case ev.Key == "Backspace":
		ev.PreventDefault()
		t.apply(t.machine.Backspace)
		return true
	case ev.Key == " ":
		ev.PreventDefault()
		t.apply(t.machine.Advance)
		return true
	}

	if ev.Alt {
		return false
	}
	char := keyboard.ResolveCharacter(ev.Code, t.layout.Layout(), ev.Shift)
	if char == "" {
		return false
	}
	ev.PreventDefault()
	t.apply(func(s typing.Session) typing.Session {
		return t.machine.Type(s, char)
	})
	return true
}

// Subscribe registers fn for session changes. The returned function removes
// the registration and is safe to call more than once.
func (t *Trainer) Subscribe(fn Listener) (unsubscribe func()) {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.listeners[id] = fn
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.listeners, id)
			t.mu.Unlock()
		})
	}
}

// Subscribers returns the number of registered listeners.
func (t *Trainer) Subscribers() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.listeners)
}

// apply runs step and notifies listeners if the session changed.
func (t *Trainer) apply(step func(typing.Session) typing.Session) {
	t.update(step, false)
}

func (t *Trainer) replace(step func(typing.Session) typing.Session) {
	t.update(step, true)
}

func (t *Trainer) update(step func(typing.Session) typing.Session, force bool) {
	t.mu.Lock()
	prev := t.session
	t.session = step(prev)
	next := t.session
	if !force && next.Equal(prev) {
		t.mu.Unlock()
		return
	}
	listeners := make([]Listener, 0, len(t.listeners))
	for _, fn := range t.listeners {
		listeners = append(listeners, fn)
	}
	t.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
}

func isRestartKey(key string) bool {
	return strings.EqualFold(key, "r") || strings.EqualFold(key, "n")
}
