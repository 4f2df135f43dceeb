package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Default is the process-wide logger. It is usable before Init is called.
var Default = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
	With().Timestamp().Logger()

// Init configures Default. level is one of debug, info, warn, error; anything
// else falls back to info. When jsonOutput is true records are written as JSON
// lines instead of the console format.
func Init(level string, jsonOutput bool) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(lvl)

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	if jsonOutput {
		out = os.Stdout
	}
	Default = zerolog.New(out).With().Timestamp().Logger()

	Default.Info().Str("level", lvl.String()).Msg("Logger initialized")
}

// For returns a logger tagged with the given component name.
func For(component string) zerolog.Logger {
	return Default.With().Str("component", component).Logger()
}

// Nop returns a logger that discards everything. Handy in tests.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
