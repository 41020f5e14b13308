package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/keytype/internal/keyboard"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "keytype.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if cerr := st.Close(); cerr != nil {
			t.Fatalf("close store: %v", cerr)
		}
	})
	return st
}

func TestGetSet(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if _, err := st.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := st.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := st.Get(ctx, "k")
	if err != nil || got != "v2" {
		t.Fatalf("expected v2, got %q, %v", got, err)
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if _, ok, err := st.Layout(ctx); err != nil || ok {
		t.Fatalf("expected no layout yet, ok=%v err=%v", ok, err)
	}
	if err := st.SetLayout(ctx, keyboard.Colemak); err != nil {
		t.Fatalf("set layout: %v", err)
	}
	layout, ok, err := st.Layout(ctx)
	if err != nil || !ok || layout != keyboard.Colemak {
		t.Fatalf("expected colemak, got %q ok=%v err=%v", layout, ok, err)
	}
}

func TestSetLayoutRejectsUnknown(t *testing.T) {
	st := openTestStore(t)
	err := st.SetLayout(context.Background(), keyboard.Layout("azerty"))
	if !errors.Is(err, keyboard.ErrUnknownLayout) {
		t.Fatalf("expected ErrUnknownLayout, got %v", err)
	}
}

func TestLayoutRejectsCorruptValue(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	if err := st.Set(ctx, LayoutKey, "azerty"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, _, err := st.Layout(ctx); !errors.Is(err, keyboard.ErrUnknownLayout) {
		t.Fatalf("expected ErrUnknownLayout, got %v", err)
	}
}

func TestReopenKeepsSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keytype.db")
	ctx := context.Background()
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := st.SetLayout(ctx, keyboard.Dvorak); err != nil {
		t.Fatalf("set layout: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	st, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = st.Close() }()
	layout, ok, err := st.Layout(ctx)
	if err != nil || !ok || layout != keyboard.Dvorak {
		t.Fatalf("expected dvorak after reopen, got %q ok=%v err=%v", layout, ok, err)
	}
}
