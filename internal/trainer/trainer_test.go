package trainer

import (
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/keytype/internal/keyboard"
	"github.com/verte-zerg/keytype/internal/typing"
)

type countingSampler struct {
	calls int
}

func (c *countingSampler) Sample(count int) []string {
	c.calls++
	words := make([]string, count)
	for i := range words {
		words[i] = "go"
	}
	return words
}

func newTrainer(layout keyboard.Layout) (*Trainer, *countingSampler) {
	sampler := &countingSampler{}
	clock := func() time.Time { return time.Unix(1_700_000_000, 0) }
	m := typing.NewMachine(sampler, 2, typing.WithClock(clock))
	tr := New(m, StaticLayout(layout))
	return tr, sampler
}

func key(k, code string) *keyboard.Event {
	return &keyboard.Event{Key: k, Code: code}
}

func TestHandleCharacterQwerty(t *testing.T) {
	tr, _ := newTrainer(keyboard.QWERTY)
	tr.SetWords([]string{"cat", "dog"})

	ev := key("c", "KeyC")
	if !tr.HandleKeyDown(ev) || !ev.DefaultPrevented() {
		t.Fatalf("expected character event to be consumed")
	}
	if got := tr.Session().Words[0].Typed; got != "c" {
		t.Fatalf("expected typed c, got %q", got)
	}
}

func TestResolvedCharacterGovernsNotKey(t *testing.T) {
	tr, _ := newTrainer(keyboard.Colemak)
	tr.SetWords([]string{"f"})
	// Physical KeyE produces f on Colemak even though the host reported e.
	tr.HandleKeyDown(key("e", "KeyE"))
	s := tr.Session()
	if s.Words[0].Typed != "f" || !s.Words[0].IsCorrect {
		t.Fatalf("expected remapped f, got %+v", s.Words[0])
	}
}

func TestLayoutResolvedPerEvent(t *testing.T) {
	layout := keyboard.QWERTY
	m := typing.NewMachine(nil, 1)
	tr := New(m, LayoutFunc(func() keyboard.Layout { return layout }))
	tr.SetWords([]string{"ef"})

	tr.HandleKeyDown(key("e", "KeyE"))
	layout = keyboard.Colemak
	tr.HandleKeyDown(key("e", "KeyE"))
	if got := tr.Session().Words[0].Typed; got != "ef" {
		t.Fatalf("expected layout switch mid-session to apply, got %q", got)
	}
}

func TestUnresolvedCharacterIgnored(t *testing.T) {
	tr, _ := newTrainer(keyboard.QWERTY)
	tr.SetWords([]string{"cat"})
	for _, ev := range []*keyboard.Event{
		key("Shift", "ShiftLeft"),
		key("x", "keyx"),
		key("Tab", "Tab"),
	} {
		if tr.HandleKeyDown(ev) || ev.DefaultPrevented() {
			t.Fatalf("expected %q to fall through", ev.Code)
		}
	}
	if tr.Session().Stats.TotalChars != 0 {
		t.Fatalf("expected no stats change")
	}
}

func TestAltIgnored(t *testing.T) {
	tr, _ := newTrainer(keyboard.QWERTY)
	tr.SetWords([]string{"cat"})
	ev := &keyboard.Event{Key: "c", Code: "KeyC", Alt: true}
	if tr.HandleKeyDown(ev) {
		t.Fatalf("expected alt-held key to be ignored")
	}
	if tr.Session().Words[0].Typed != "" {
		t.Fatalf("expected no typed text")
	}
}

func TestShortcuts(t *testing.T) {
	cases := []struct {
		name       string
		ev         *keyboard.Event
		regenerate bool
	}{
		{"ctrl r", &keyboard.Event{Key: "r", Code: "KeyR", Ctrl: true}, true},
		{"meta n", &keyboard.Event{Key: "N", Code: "KeyN", Meta: true, Shift: true}, true},
		{"escape", key("Escape", "Escape"), true},
		{"ctrl c swallowed", &keyboard.Event{Key: "c", Code: "KeyC", Ctrl: true}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr, sampler := newTrainer(keyboard.QWERTY)
			tr.SetWords([]string{"cat"})
			if !tr.HandleKeyDown(tc.ev) || !tc.ev.DefaultPrevented() {
				t.Fatalf("expected shortcut to be consumed")
			}
			if got := sampler.calls == 1; got != tc.regenerate {
				t.Fatalf("regenerate=%v, sampler calls %d", tc.regenerate, sampler.calls)
			}
			s := tr.Session()
			if !tc.regenerate && (s.Words[0].Word != "cat" || s.Words[0].Typed != "") {
				t.Fatalf("expected swallowed shortcut to leave session alone: %+v", s.Words[0])
			}
		})
	}
}

func TestSpaceAdvancesAndRegenerates(t *testing.T) {
	tr, sampler := newTrainer(keyboard.QWERTY)
	tr.SetWords([]string{"hi"})
	tr.HandleKeyDown(key("h", "KeyH"))
	tr.HandleKeyDown(key("i", "KeyI"))
	ev := key(" ", "Space")
	if !tr.HandleKeyDown(ev) || !ev.DefaultPrevented() {
		t.Fatalf("expected space to be consumed")
	}
	s := tr.Session()
	if sampler.calls != 1 || s.CurrentIndex != 0 || len(s.Words) == 0 {
		t.Fatalf("expected regenerated session, got %+v", s)
	}
}

func TestSpaceSwallowedOnIncompleteWord(t *testing.T) {
	tr, _ := newTrainer(keyboard.QWERTY)
	tr.SetWords([]string{"cat", "dog"})
	tr.HandleKeyDown(key("c", "KeyC"))
	ev := key(" ", "Space")
	if !tr.HandleKeyDown(ev) {
		t.Fatalf("expected space to be consumed")
	}
	s := tr.Session()
	if s.CurrentIndex != 0 || s.Words[0].Typed != "c" {
		t.Fatalf("expected no advance and no typed space, got %+v", s)
	}
}

func TestBackspace(t *testing.T) {
	tr, _ := newTrainer(keyboard.QWERTY)
	tr.SetWords([]string{"cat"})
	tr.HandleKeyDown(key("c", "KeyC"))
	ev := key("Backspace", "Backspace")
	if !tr.HandleKeyDown(ev) || !ev.DefaultPrevented() {
		t.Fatalf("expected backspace to be consumed")
	}
	if got := tr.Session().Words[0].Typed; got != "" {
		t.Fatalf("expected empty typed, got %q", got)
	}
}

func TestOneNotificationPerEvent(t *testing.T) {
	tr, _ := newTrainer(keyboard.QWERTY)
	tr.SetWords([]string{"cat"})
	var calls int
	unsubscribe := tr.Subscribe(func(typing.Session) { calls++ })
	defer unsubscribe()

	tr.HandleKeyDown(key("c", "KeyC"))
	tr.HandleKeyDown(key("Shift", "ShiftLeft"))
	if calls != 1 {
		t.Fatalf("expected one notification, got %d", calls)
	}
}

func TestSubscribeUnsubscribe(t *testing.T) {
	tr, _ := newTrainer(keyboard.QWERTY)
	var got []typing.Session
	unsubscribe := tr.Subscribe(func(s typing.Session) { got = append(got, s) })
	if tr.Subscribers() != 1 {
		t.Fatalf("expected one subscriber")
	}
	tr.SetWords([]string{"a"})
	unsubscribe()
	unsubscribe()
	tr.SetWords([]string{"b"})
	if tr.Subscribers() != 0 {
		t.Fatalf("expected no subscribers after unsubscribe")
	}
	if len(got) != 1 || got[0].Words[0].Word != "a" {
		t.Fatalf("unexpected notifications: %+v", got)
	}
}

func TestNilEvent(t *testing.T) {
	tr, _ := newTrainer(keyboard.QWERTY)
	if tr.HandleKeyDown(nil) {
		t.Fatalf("expected nil event to be ignored")
	}
}

func TestConsumedNoOpsDoNotNotify(t *testing.T) {
	tr, _ := newTrainer(keyboard.QWERTY)
	tr.SetWords([]string{"cat", "dog"})
	var calls int
	unsubscribe := tr.Subscribe(func(typing.Session) { calls++ })
	defer unsubscribe()

	noop := func(ev *keyboard.Event) {
		t.Helper()
		before := calls
		if !tr.HandleKeyDown(ev) || !ev.DefaultPrevented() {
			t.Fatalf("expected %q to be consumed", ev.Key)
		}
		if calls != before {
			t.Fatalf("expected no notification for %q", ev.Key)
		}
	}

	noop(key("Backspace", "Backspace"))
	noop(key(" ", "Space"))
	for _, c := range []string{"c", "a", "t"} {
		tr.HandleKeyDown(key(c, "Key"+strings.ToUpper(c)))
	}
	if calls != 3 {
		t.Fatalf("expected three notifications, got %d", calls)
	}
	noop(key("x", "KeyX"))
	if tr.Session().Stats.TotalChars != 3 {
		t.Fatalf("expected overflow to leave stats alone")
	}
}

func TestResetAlwaysNotifies(t *testing.T) {
	tr, _ := newTrainer(keyboard.QWERTY)
	tr.SetWords([]string{"cat"})
	var calls int
	unsubscribe := tr.Subscribe(func(typing.Session) { calls++ })
	defer unsubscribe()

	tr.SetWords([]string{"cat"})
	tr.Reset()
	tr.Reset()
	if calls != 3 {
		t.Fatalf("expected a notification per replacement, got %d", calls)
	}
}
