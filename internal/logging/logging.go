// Package logging provides the zerolog console logger used by recap.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// LevelEnv overrides the default log level when no level is given.
const LevelEnv = "RECAP_LOG_LEVEL"

// New returns a console logger writing to w, os.Stderr when w is nil.
// The level comes from levelOverride or the RECAP_LOG_LEVEL environment
// variable and defaults to warn, so that progress chatter stays hidden.
// Colours are used only when w is a terminal.
func New(levelOverride string, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(w),
	}
	logger := zerolog.New(output).With().Timestamp().Logger()

	levelString := levelOverride
	if levelString == "" {
		levelString = os.Getenv(LevelEnv)
	}
	if levelString == "" {
		levelString = "warn"
	}
	level, err := zerolog.ParseLevel(strings.ToLower(levelString))
	if err != nil || level == zerolog.NoLevel {
		logger.Warn().Str("level", levelString).Msg("Invalid log level, defaulting to WARN")
		level = zerolog.WarnLevel
	}
	logger = logger.Level(level)
	logger.Debug().Msg("Logger initialized to " + strings.ToUpper(level.String()))
	return logger
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
