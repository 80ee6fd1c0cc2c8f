package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.StampMicro}).
	With().Timestamp().Logger()

// Init configures the process logger (called once from main).
// format is "console" or "json"; level is any zerolog level name.
func Init(level, format string) {
	var out io.Writer = os.Stdout
	if !strings.EqualFold(strings.TrimSpace(format), "json") {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.StampMicro}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	log = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// SetOutput replaces the sink, keeping the current level. Used by tests.
func SetOutput(w io.Writer) {
	log = log.Output(w)
}

func Infof(format string, v ...any) {
	log.Info().Msgf(format, v...)
}

func Warnf(format string, v ...any) {
	log.Warn().Msgf(format, v...)
}

func Errorf(format string, v ...any) {
	log.Error().Msgf(format, v...)
}

func Debugf(format string, v ...any) {
	log.Debug().Msgf(format, v...)
}

func Fatalf(format string, v ...any) {
	log.Fatal().Msgf(format, v...)
}
