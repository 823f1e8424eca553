package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds a structured logger with RFC3339 timestamps. Console output is
// the default; jsonOutput switches to one JSON object per line.
func New(level string, jsonOutput bool) zerolog.Logger {
	return NewWithWriter(os.Stdout, level, jsonOutput)
}

func NewWithWriter(out io.Writer, level string, jsonOutput bool) zerolog.Logger {
	var w io.Writer = out
	if !jsonOutput {
		w = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}
	return zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
