// Package logger provides a configured zerolog logger.
package logger

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a console logger at the named level. An empty or unknown
// level falls back to info.
func New(level string, w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    true,
	}).Level(ParseLevel(level)).With().
		Timestamp().
		Logger()
}

func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
