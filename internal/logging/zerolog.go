package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewZerolog builds the zerolog logger handed to the database and influx
// managers. It shares the level names and RFC3339 UTC timestamps of the
// slog setup.
func NewZerolog(w io.Writer, level string) zerolog.Logger {
	lvl := parseLevel(level)
	zl := zerolog.InfoLevel
	switch {
	case lvl <= -4:
		zl = zerolog.DebugLevel
	case lvl >= 8:
		zl = zerolog.ErrorLevel
	case lvl >= 4:
		zl = zerolog.WarnLevel
	}
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	return zerolog.New(w).Level(zl).With().Timestamp().Str("service", ServiceName).Logger()
}
