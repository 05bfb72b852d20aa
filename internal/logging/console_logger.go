package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewConsoleLogger creates the diagnostic logger. It writes human readable
// lines to w (stderr when nil) so it never mixes with the status output on
// stdout.
func NewConsoleLogger(w io.Writer, debug bool) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
	}

	return zerolog.New(console).
		Level(level).
		With().
		Timestamp().
		Str("app", "ssi").
		Logger()
}

// Nop returns a logger that discards everything, for tests
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
