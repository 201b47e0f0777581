// SPDX-License-Identifier: MPL-2.0

// Package logging builds the charmbracelet/log loggers used across mvnenv.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Prefix is prepended to every log line.
const Prefix = "mvnenv"

// Logger wraps a charmbracelet/log logger with the notion of "detail"
// messages: progress output that is promoted to info level when verbose
// repository logging is requested and stays at debug level otherwise.
type Logger struct {
	*log.Logger
	verbose bool
}

// New creates a Logger writing to w. When debug is true the logger emits
// debug-level messages too.
func New(w io.Writer, debug bool) *Logger {
	l := log.NewWithOptions(w, log.Options{
		Prefix: Prefix,
	})
	if debug {
		l.SetLevel(log.DebugLevel)
	}
	return &Logger{Logger: l}
}

// NewStderr creates a Logger writing to os.Stderr.
func NewStderr(debug bool) *Logger {
	return New(os.Stderr, debug)
}

// Discard returns a Logger that drops all output.
func Discard() *Logger {
	return New(io.Discard, false)
}

// WithVerbose returns a copy of l whose detail messages are logged at info level
// when verbose is true.
func (l *Logger) WithVerbose(verbose bool) *Logger {
	return &Logger{Logger: l.Logger, verbose: verbose}
}

// Verbose reports whether detail messages are promoted to info level.
func (l *Logger) Verbose() bool { return l.verbose }

// Detail logs msg at info level in verbose mode and at debug level otherwise.
func (l *Logger) Detail(msg any, keyvals ...any) {
	if l.verbose {
		l.Info(msg, keyvals...)
		return
	}
	l.Debug(msg, keyvals...)
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *Logger) *Logger {
	if l == nil {
		return Discard()
	}
	return l
}
