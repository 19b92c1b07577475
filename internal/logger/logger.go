// Package logger provides structured logging for streamctl.
// Records are log/slog records; presentation is chosen at the sink
// (console colours, HTML spans, JSON or plain text). When verbose mode is
// enabled via the --verbose flag, debug and info records are printed too.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Format selects the sink handler.
type Format string

// Supported formats.
const (
	FormatAuto    Format = "auto"
	FormatText    Format = "text"
	FormatConsole Format = "console"
	FormatHTML    Format = "html"
	FormatJSON    Format = "json"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	format            = FormatAuto
	level             = new(slog.LevelVar)
	current *slog.Logger
)

func init() {
	level.Set(slog.LevelWarn)
	current = slog.New(newHandler(output, format))
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelWarn)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	current = slog.New(newHandler(output, format))
}

// SetFormat selects the sink format. Unknown formats fall back to auto.
func SetFormat(f Format) {
	mu.Lock()
	defer mu.Unlock()
	format = f
	current = slog.New(newHandler(output, format))
}

// Logger returns the underlying slog logger.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

func newHandler(w io.Writer, f Format) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	switch f {
	case FormatJSON:
		return slog.NewJSONHandler(w, opts)
	case FormatText:
		return slog.NewTextHandler(w, opts)
	case FormatConsole:
		return NewConsoleHandler(w, opts)
	case FormatHTML:
		return NewHTMLHandler(w, opts)
	default:
		if isTerminal(w) {
			return NewConsoleHandler(w, opts)
		}
		return slog.NewTextHandler(w, opts)
	}
}

func log(lvl slog.Level, msg string, args ...any) {
	Logger().Log(context.Background(), lvl, msg, args...)
}

// Debug logs at debug level. Printed only in verbose mode.
func Debug(msg string, args ...any) {
	log(slog.LevelDebug, msg, args...)
}

// Info logs at info level. Printed only in verbose mode.
func Info(msg string, args ...any) {
	log(slog.LevelInfo, msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	log(slog.LevelWarn, msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	log(slog.LevelError, msg, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}
