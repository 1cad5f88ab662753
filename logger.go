package winlog

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// NewLogger returns a human readable logger writing to w at the given level.
// Standard output is left to the messages meant for the operator, so w is usually stderr.
func NewLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := ParseLogLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "2006-01-02 15:04:05",
	}
	return zerolog.New(console).Level(lvl).With().Timestamp().Logger()
}

// ParseLogLevel parses debug, info, warn (or warning) and error.
func ParseLogLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf("unknown log level %q", level)
}
