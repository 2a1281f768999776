// Package log wraps log/slog with the process-wide logger used by ecsh.
// Diagnostics go to stderr so they never mix with the interactive session.
package log

import (
	"io"
	"log/slog"
	"os"
)

var logger *slog.Logger

// Options configures the logger.
type Options struct {
	// Verbose lowers the threshold from Warn to Debug.
	Verbose bool
	// JSONFormat switches the handler to JSON.
	JSONFormat bool
	// Stderr is the destination (defaults to os.Stderr).
	Stderr io.Writer
}

// Init installs the global logger.
func Init(opts Options) {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if opts.JSONFormat {
		h = slog.NewJSONHandler(stderr, handlerOpts)
	} else {
		h = slog.NewTextHandler(stderr, handlerOpts)
	}

	logger = slog.New(h)
	slog.SetDefault(logger)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	logger.Debug(msg, args...)
}

// Info logs an info message.
func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

func init() {
	// Default logger until Init is called
	logger = slog.Default()
}
