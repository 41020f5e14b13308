package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/verte-zerg/keytype/internal/keyboard"
)

func validConfig() Config {
	return Config{
		Layout:   keyboard.QWERTY,
		Lang:     "en",
		Words:    10,
		PunctSet: ".,",
	}
}

func TestConfigValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	cases := map[string]func(*Config){
		"words":     func(c *Config) { c.Words = 0 },
		"caps":      func(c *Config) { c.CapsPct = 1.5 },
		"punct":     func(c *Config) { c.PunctPct = -0.1 },
		"punct-set": func(c *Config) { c.PunctPct = 0.5; c.PunctSet = "" },
	}
	for name, mutate := range cases {
		cfg := validConfig()
		mutate(&cfg)
		var fieldErr *FieldError
		if err := cfg.Validate(); !errors.As(err, &fieldErr) || fieldErr.Field != name {
			t.Fatalf("%s: expected field error, got %v", name, err)
		}
	}
}

func TestConfigValidateLayout(t *testing.T) {
	cfg := validConfig()
	cfg.Layout = keyboard.Layout("azerty")
	err := cfg.Validate()
	if !errors.Is(err, keyboard.ErrUnknownLayout) {
		t.Fatalf("expected ErrUnknownLayout, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "layout: ") {
		t.Fatalf("expected error keyed by layout, got %q", err)
	}
}

func TestServerConfigValidate(t *testing.T) {
	cfg := ServerConfig{Addr: ":8080", LogFormat: "json", LogLevel: "INFO"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid server config, got %v", err)
	}
	bad := []ServerConfig{
		{Addr: "", LogFormat: "text", LogLevel: "info"},
		{Addr: ":1", LogFormat: "xml", LogLevel: "info"},
		{Addr: ":1", LogFormat: "text", LogLevel: "trace"},
	}
	for _, cfg := range bad {
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected error for %+v", cfg)
		}
	}
}
