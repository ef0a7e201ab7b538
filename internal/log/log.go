// Package log configures structured logging for lexbridge using log/slog.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Output formats accepted by Setup.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options controls the default logger installed by Setup.
type Options struct {
	Verbose bool
	Quiet   bool

	// Format is FormatText (default) or FormatJSON.
	Format string

	// Writer receives log output. Defaults to os.Stderr.
	Writer io.Writer
}

// Setup configures the default slog logger.
//
//   - quiet mode:   only WARN and ERROR messages
//   - normal mode:  INFO and above
//   - verbose mode: DEBUG and above
//
// Quiet wins when both flags are set.
func Setup(opts Options) {
	slog.SetDefault(slog.New(NewHandler(opts)))
}

// NewHandler builds the handler Setup would install without touching the
// default logger.
func NewHandler(opts Options) slog.Handler {
	var level slog.Level
	switch {
	case opts.Quiet:
		level = slog.LevelWarn
	case opts.Verbose:
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	hopts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(opts.Format, FormatJSON) {
		return slog.NewJSONHandler(w, hopts)
	}
	return slog.NewTextHandler(w, hopts)
}

// ValidFormat reports whether f names a supported output format. The empty
// string selects the default text format.
func ValidFormat(f string) bool {
	switch strings.ToLower(f) {
	case "", FormatText, FormatJSON:
		return true
	}
	return false
}
