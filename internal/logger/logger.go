package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a JSON line logger writing to w. Every entry carries a "ts" field
// formatted as RFC3339Nano in loc, plus "level" and "msg".
//
// zerolog keeps the timestamp field name and format in package globals, so the
// location applies process-wide.
func New(w io.Writer, loc *time.Location) zerolog.Logger {
	if loc == nil {
		loc = time.UTC
	}
	zerolog.TimestampFieldName = "ts"
	zerolog.MessageFieldName = "msg"
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.TimestampFunc = func() time.Time { return time.Now().In(loc) }

	return zerolog.New(w).With().Timestamp().Logger()
}

// Stdout is New(os.Stdout, loc).
func Stdout(loc *time.Location) zerolog.Logger {
	return New(os.Stdout, loc)
}
