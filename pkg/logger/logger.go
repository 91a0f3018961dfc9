// Package logger provides the process-wide structured logger backed by
// zerolog. Call Setup once during startup; components retrieve the shared
// instance through L.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls how the shared logger is built.
type Options struct {
	// Level is the minimum level to emit: debug, info, warn or error.
	// An empty or unknown value falls back to info.
	Level string
	// Console switches to human-readable console output instead of JSON.
	Console bool
	// Output is where log lines are written. Defaults to os.Stderr.
	Output io.Writer
}

var (
	shared zerolog.Logger
	once   sync.Once
	ready  bool
)

// Setup builds the shared logger. Only the first call takes effect; later
// calls return the already-configured instance.
func Setup(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339

		out := opts.Output
		if out == nil {
			out = os.Stderr
		}
		if opts.Console {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
		}

		level := ParseLevel(opts.Level)
		shared = zerolog.New(out).Level(level).With().Timestamp().Logger()
		ready = true
	})
	return shared
}

// L returns the shared logger. Before Setup has run it returns a disabled
// logger so that library code can log unconditionally.
func L() zerolog.Logger {
	if !ready {
		return zerolog.Nop()
	}
	return shared
}

// Reset tears the shared logger down so the next Setup rebuilds it. Only
// meant for tests.
func Reset() {
	once = sync.Once{}
	shared = zerolog.Logger{}
	ready = false
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
