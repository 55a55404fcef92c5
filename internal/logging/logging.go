// Package logging builds the zerolog logger used across leanpub-multi-action.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Options configure New.
type Options struct {
	Level  string    // trace, debug, info, warn or error; anything else is info
	Format string    // text or json; anything else is json
	Output io.Writer // defaults to os.Stderr
}

// New returns a logger writing to opts.Output. Text output uses zerolog's
// console writer and only colours when the output is a terminal.
func New(opts Options) zerolog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var writer io.Writer = out
	if Format(opts.Format) == "text" {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    !IsTerminal(out),
			TimeFormat: "15:04:05",
		}
	}

	return zerolog.New(writer).
		Level(Level(opts.Level)).
		With().
		Timestamp().
		Str("service.name", "leanpub-multi-action").
		Logger()
}

// Level maps a level name onto a zerolog level.
func Level(name string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Format normalises a log format name.
func Format(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "text", "console":
		return "text"
	default:
		return "json"
	}
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
