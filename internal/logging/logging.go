// Package logging wires up the process-wide zerolog logger: JSON output
// by default, a human-readable console writer when HEXPROOF_LOG_PRETTY
// is set, matching the teacher's direct zerolog dependency.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures zerolog's global logger at the given level name
// (debug, info, warn, error; unrecognised names fall back to info) and
// returns it for callers that want an explicit handle rather than the
// package-global log.Logger.
func Init(levelName string) zerolog.Logger {
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var writer = os.Stderr
	var logger zerolog.Logger
	if os.Getenv("HEXPROOF_LOG_PRETTY") != "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: writer, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
	} else {
		logger = zerolog.New(writer).With().Timestamp().Logger()
	}

	log.Logger = logger
	return logger
}
