// Package ui prints operator-facing messages to stderr.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

var writer io.Writer = os.Stderr

var color = detectColor(os.Stderr)

func detectColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetWriter overrides the output writer (for testing). nil restores stderr.
func SetWriter(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	writer = w
}

// SetColorEnabled overrides color detection (for testing).
func SetColorEnabled(enabled bool) {
	color = enabled
}

func ansi(code, s string) string {
	if !color {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

// Bold returns s wrapped in bold ANSI codes.
func Bold(s string) string { return ansi("1", s) }

// Warnf prints a formatted warning.
func Warnf(format string, args ...any) {
	fmt.Fprintf(writer, "%s %s\n", ansi("33", "Warning:"), fmt.Sprintf(format, args...))
}

// Error prints an error.
func Error(msg string) {
	fmt.Fprintf(writer, "%s %s\n", ansi("31", "Error:"), msg)
}

// Infof prints a formatted message with no prefix.
func Infof(format string, args ...any) {
	fmt.Fprintf(writer, format+"\n", args...)
}
