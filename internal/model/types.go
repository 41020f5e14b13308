// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/keytype/internal/keyboard"
)

// Config defines practice settings.
type Config struct {
	Layout   keyboard.Layout
	Lang     string
	WordList string
	Words    int
	CapsPct  float64
	PunctPct float64
	PunctSet string
}

// FieldError reports an invalid setting by its key. Keys match both the
// CLI flag and the config file entry, so callers can name where the value
// came from.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func invalid(field, format string, args ...any) error {
	return &FieldError{Field: field, Err: fmt.Errorf(format, args...)}
}

// Validate checks practice settings.
func (c Config) Validate() error {
	if !c.Layout.Valid() {
		return invalid("layout", "%w: %q (available: %s)", keyboard.ErrUnknownLayout, string(c.Layout), strings.Join(keyboard.LayoutNames(), ", "))
	}
	if c.Words <= 0 {
		return invalid("words", "must be > 0")
	}
	if c.CapsPct < 0 || c.CapsPct > 1 {
		return invalid("caps", "must be between 0 and 1")
	}
	if c.PunctPct < 0 || c.PunctPct > 1 {
		return invalid("punct", "must be between 0 and 1")
	}
	if c.PunctPct > 0 && c.PunctSet == "" {
		return invalid("punct-set", "must not be empty")
	}
	return nil
}

// ServerConfig defines settings of the websocket server.
type ServerConfig struct {
	Addr      string
	LogFormat string
	LogLevel  string
}

// Validate checks server settings.
func (c ServerConfig) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return invalid("addr", "must not be empty")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return invalid("log-format", "must be text or json")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return invalid("log-level", "must be one of debug, info, warn, error")
	}
	return nil
}
