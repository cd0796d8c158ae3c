// Package ui provides terminal output utilities for skilldex.
package ui

import (
	"github.com/fatih/color"
)

// Color function types for styled output.
var (
	// Success is used for passing checks (green).
	Success = color.New(color.FgGreen).SprintFunc()
	// Error is used for lint errors and failures (red).
	Error = color.New(color.FgRed).SprintFunc()
	// Warning is used for lint warnings (yellow).
	Warning = color.New(color.FgYellow).SprintFunc()
	// Info is used for informational messages (cyan).
	Info = color.New(color.FgCyan).SprintFunc()
	// Bold is used for emphasis.
	Bold = color.New(color.Bold).SprintFunc()
	// Dim is used for secondary information such as file paths.
	Dim = color.New(color.Faint).SprintFunc()
	// Header is used for table headers (bold cyan).
	Header = color.New(color.FgCyan, color.Bold).SprintFunc()
	// Keyword is used for invocation keywords (magenta).
	Keyword = color.New(color.FgMagenta).SprintFunc()
)

// Status symbols.
const (
	SymbolPass    = "✓"
	SymbolFail    = "✗"
	SymbolWarning = "⚠"
	SymbolSkipped = "-"
)

func status(paint func(a ...interface{}) string, symbol, msg string) string {
	if msg == "" {
		return paint(symbol)
	}
	return paint(symbol) + " " + msg
}

// StatusPass renders a green checkmark, optionally followed by msg.
func StatusPass(msg string) string { return status(Success, SymbolPass, msg) }

// StatusFail renders a red cross, optionally followed by msg.
func StatusFail(msg string) string { return status(Error, SymbolFail, msg) }

// StatusWarning renders a yellow warning sign, optionally followed by msg.
func StatusWarning(msg string) string { return status(Warning, SymbolWarning, msg) }

// StatusSkipped renders a dimmed dash, optionally followed by msg.
func StatusSkipped(msg string) string { return status(Dim, SymbolSkipped, msg) }

// DisableColors turns off all colored output, e.g. for piped output.
func DisableColors() {
	color.NoColor = true
}

// EnableColors turns colored output back on.
func EnableColors() {
	color.NoColor = false
}

// IsColorEnabled reports whether colored output is active.
func IsColorEnabled() bool {
	return !color.NoColor
}
