// Package logging configures the global zerolog logger. The TUI owns the
// terminal, so interactive sessions log to a file; CLI commands log to
// stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options selects the log destination and level.
type Options struct {
	Level string

	// File is used when ToFile is set. Empty resolves to DefaultFile().
	File   string
	ToFile bool

	// Stderr is the console destination; nil means os.Stderr.
	Stderr io.Writer
}

// Setup installs the global logger and returns a function that releases
// the log file, if any.
func Setup(opts Options) (func() error, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	if !opts.ToFile {
		out := opts.Stderr
		if out == nil {
			out = os.Stderr
		}
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
			Level(level).With().Timestamp().Logger()
		return func() error { return nil }, nil
	}

	path := opts.File
	if path == "" {
		if path, err = DefaultFile(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.Logger = zerolog.New(f).Level(level).With().Timestamp().Logger()
	return f.Close, nil
}

// DefaultFile returns $XDG_STATE_HOME/prepdeck/prepdeck.log, falling back
// to ~/.local/state.
func DefaultFile() (string, error) {
	state := os.Getenv("XDG_STATE_HOME")
	if state == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		state = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(state, "prepdeck", "prepdeck.log"), nil
}
