package config

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Logger aliases zerolog.Logger so callers outside this package can take a
// logger without importing zerolog themselves.
type Logger = zerolog.Logger

// NewLogger builds the CLI logger. Output goes to w (stderr in practice) so it
// never mixes with table output on stdout.
func NewLogger(w io.Writer, appEnv, level string) Logger {
	lvl := zerolog.WarnLevel
	if appEnv == "development" {
		lvl = zerolog.DebugLevel
	}
	if level != "" {
		if parsed, err := zerolog.ParseLevel(level); err == nil {
			lvl = parsed
		}
	}

	logger := zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	if appEnv == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	}
	return logger
}

// Discard returns a logger that drops everything; used when a component is
// constructed without one.
func Discard() *Logger {
	l := zerolog.New(io.Discard)
	return &l
}
