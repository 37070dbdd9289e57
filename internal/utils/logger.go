package utils

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the root logger writing to out from the logging section of the config.
// Unknown level names fall back to info.
func NewLogger(out io.Writer, level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
