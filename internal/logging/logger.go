// Package logging provides structured logging for the terminal UI and the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog with the output chosen for the running mode.
type Logger struct {
	zlog   zerolog.Logger
	output io.Writer
	closer io.Closer
}

// New creates a logger writing human-readable lines to w.
func New(w io.Writer, debug bool) *Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    true,
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return &Logger{
		zlog:   zerolog.New(output).Level(level).With().Timestamp().Logger(),
		output: w,
	}
}

// NewConsole logs to stderr, for CLI subcommands.
func NewConsole(debug bool) *Logger {
	return New(os.Stderr, debug)
}

// NewFile logs to the file at path, appending. The terminal UI owns the screen,
// so it cannot log to stdout or stderr.
func NewFile(path string, debug bool) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l := New(f, debug)
	l.closer = f
	return l, nil
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop(), output: io.Discard}
}

// Info returns an info level event.
func (l *Logger) Info() *zerolog.Event {
	return l.zlog.Info()
}

// Error returns an error level event.
func (l *Logger) Error() *zerolog.Event {
	return l.zlog.Error()
}

// Debug returns a debug level event.
func (l *Logger) Debug() *zerolog.Event {
	return l.zlog.Debug()
}

// Warn returns a warn level event.
func (l *Logger) Warn() *zerolog.Event {
	return l.zlog.Warn()
}

// With returns a child logger carrying an extra component field.
func (l *Logger) With(component string) *Logger {
	return &Logger{
		zlog:   l.zlog.With().Str("component", component).Logger(),
		output: l.output,
	}
}

// Output returns the current output writer.
func (l *Logger) Output() io.Writer {
	return l.output
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
