package session

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger fans log records out to the terminal and, during apply runs, to
// the session log file. The terminal shows info and above without
// timestamps; the file keeps everything with timestamps.
type Logger struct {
	term *log.Logger
	file *log.Logger
}

// NewTermLogger returns a logger that writes only to stderr. Used for
// dry runs, which create no session directory.
func NewTermLogger(verbose bool) *Logger {
	return &Logger{term: newTerm(verbose)}
}

func newLogger(w io.Writer, verbose bool) *Logger {
	file := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           log.DebugLevel,
	})
	return &Logger{term: newTerm(verbose), file: file}
}

func newTerm(verbose bool) *log.Logger {
	term := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
	if verbose {
		term.SetLevel(log.DebugLevel)
	}
	return term
}

// Debug logs at debug level. Terminal output requires verbose mode.
func (l *Logger) Debug(msg interface{}, keyvals ...interface{}) {
	l.term.Debug(msg, keyvals...)
	if l.file != nil {
		l.file.Debug(msg, keyvals...)
	}
}

// Info logs at info level.
func (l *Logger) Info(msg interface{}, keyvals ...interface{}) {
	l.term.Info(msg, keyvals...)
	if l.file != nil {
		l.file.Info(msg, keyvals...)
	}
}

// Warn logs at warn level.
func (l *Logger) Warn(msg interface{}, keyvals ...interface{}) {
	l.term.Warn(msg, keyvals...)
	if l.file != nil {
		l.file.Warn(msg, keyvals...)
	}
}

// Error logs at error level.
func (l *Logger) Error(msg interface{}, keyvals ...interface{}) {
	l.term.Error(msg, keyvals...)
	if l.file != nil {
		l.file.Error(msg, keyvals...)
	}
}
