package logging

import (
	"io"
	"os"
	"strings"

	"github.com/phuslu/log"
)

// New builds a leveled logger writing to stderr. Format "json" emits one JSON
// object per line, anything else a human readable console line.
func New(level, format string) *log.Logger {
	return NewWithWriter(level, format, os.Stderr)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(level, format string, w io.Writer) *log.Logger {
	logger := &log.Logger{
		Level:      log.ParseLevel(strings.ToLower(level)),
		TimeFormat: "15:04:05.000",
	}
	if strings.EqualFold(format, "json") {
		logger.Writer = &log.IOWriter{Writer: w}
	} else {
		logger.Writer = &log.ConsoleWriter{Writer: w, QuoteString: true}
	}
	return logger
}

// Discard returns a logger that drops every event, for tests.
func Discard() *log.Logger {
	return &log.Logger{Level: log.PanicLevel, Writer: &log.IOWriter{Writer: io.Discard}}
}
