// Package logging builds the charmbracelet loggers shared by the CLI,
// the SSH server and the HTTP API. Loggers travel through context.Context.
package logging

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// New creates a logger with timestamp formatting that filters at level.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// NewWithPrefix is New with a component prefix, e.g. "pipes-ssh".
func NewWithPrefix(w io.Writer, level log.Level, prefix string) *log.Logger {
	l := New(w, level)
	l.SetPrefix(prefix)
	return l
}

// ParseLevel maps a config level name to a log level.
// Unknown names fall back to info.
func ParseLevel(name string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

type ctxKey int

const loggerKey ctxKey = 0

// WithLogger returns a new context with the given logger attached.
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func FromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// Discard returns a logger that writes nothing. Handy in tests.
func Discard() *log.Logger {
	return New(io.Discard, log.FatalLevel)
}
