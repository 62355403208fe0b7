package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// Logger is the logging interface shared by the job, the lock and the CLI.
//
// Info, Warning and Error are diagnostic: they go to the debug log file.
// InfoToUser, WarningToUser, Success and StatusMessage are user-facing and
// always reach stdout.
type Logger interface {
	// Info logs a debug-only message.
	Info(format string, args ...any)

	// Warning logs a potential problem. It is echoed to stdout in verbose mode.
	Warning(format string, args ...any)

	// Error logs a failure. It is always echoed to stderr.
	Error(format string, args ...any)

	// InfoToUser shows an informational message to the user.
	InfoToUser(format string, args ...any)

	// WarningToUser shows a warning to the user.
	WarningToUser(format string, args ...any)

	// Success shows a completed operation to the user.
	Success(format string, args ...any)

	// StatusMessage prints a plain line to stdout without logging it.
	StatusMessage(format string, args ...any)

	// Close flushes and closes the debug log file, if any.
	Close() error
}

// DefaultLogger writes structured JSON lines to the debug log with zerolog
// and plain prefixed lines to the user's terminal.
type DefaultLogger struct {
	mu      sync.Mutex
	log     zerolog.Logger
	enabled bool
	verbose bool
	stdout  io.Writer
	stderr  io.Writer
	file    *os.File
}

// New creates a Logger writing user output to the process stdout and stderr.
func New(enabled bool, logFile string, verbose bool) *DefaultLogger {
	return NewWithOutput(enabled, logFile, verbose, os.Stdout, os.Stderr)
}

// NewWithOutput creates a DefaultLogger with custom user-facing writers.
// When enabled is false nothing is written to disk.
func NewWithOutput(enabled bool, logFile string, verbose bool, stdout, stderr io.Writer) *DefaultLogger {
	l := &DefaultLogger{
		log:     zerolog.Nop(),
		enabled: enabled,
		verbose: verbose,
		stdout:  stdout,
		stderr:  stderr,
	}
	if !enabled {
		return l
	}

	if dir := filepath.Dir(logFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			_, _ = fmt.Fprintf(stderr, "⚠️ Failed to create log directory: %v\n", err)
		}
	}

	f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "⚠️ Failed to open log file: %v, using stderr instead\n", err)
		l.log = zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).With().Timestamp().Logger()
		return l
	}

	l.file = f
	l.log = zerolog.New(f).With().Timestamp().Int("pid", os.Getpid()).Logger()
	_, _ = fmt.Fprintf(stdout, "🔍 Debug logging enabled. Logs will be written to: %s\n", logFile)
	l.log.Info().Msg("commitgen debug logging started")

	return l
}

// Discard returns a Logger that drops everything.
func Discard() *DefaultLogger {
	return NewWithOutput(false, "", false, io.Discard, io.Discard)
}

// Info logs an informational message (file only)
func (l *DefaultLogger) Info(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.log.Info().Msgf(format, args...)
}

// InfoToUser logs to the file and prints to stdout
func (l *DefaultLogger) InfoToUser(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	l.log.Info().Bool("user", true).Msg(msg)
	_, _ = fmt.Fprintf(l.stdout, "ℹ️  %s\n", msg)
}

// Success logs to the file and prints to stdout
func (l *DefaultLogger) Success(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	l.log.Info().Bool("user", true).Str("outcome", "success").Msg(msg)
	_, _ = fmt.Fprintf(l.stdout, "✅ %s\n", msg)
}

// Warning logs a warning message
func (l *DefaultLogger) Warning(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	l.log.Warn().Msg(msg)

	if l.verbose {
		_, _ = fmt.Fprintf(l.stdout, "⚠️  %s\n", msg)
	}
}

// WarningToUser logs to the file and prints to stdout
func (l *DefaultLogger) WarningToUser(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	l.log.Warn().Bool("user", true).Msg(msg)
	_, _ = fmt.Fprintf(l.stdout, "⚠️  %s\n", msg)
}

// Error logs an error message
func (l *DefaultLogger) Error(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	l.log.Error().Msg(msg)
	_, _ = fmt.Fprintf(l.stderr, "❌ %s\n", msg)
}

// StatusMessage prints a status message to stdout only (no logging)
func (l *DefaultLogger) StatusMessage(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, _ = fmt.Fprintln(l.stdout, fmt.Sprintf(format, args...))
}

// Close flushes the log file to disk and closes it.
func (l *DefaultLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	l.log.Info().Msg("commitgen debug logging stopped")
	if err := l.file.Sync(); err != nil {
		return err
	}
	err := l.file.Close()
	l.file = nil
	l.log = zerolog.Nop()
	return err
}
