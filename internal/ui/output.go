package ui

import (
	"fmt"
	"os"
)

// Status symbols (no color, rely on unicode)
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
)

// Success prints a success message to stdout
func Success(msg string) {
	fmt.Printf("%s %s\n", SymbolSuccess, msg)
}

// Successf prints a formatted success message to stdout
func Successf(format string, args ...any) {
	Success(fmt.Sprintf(format, args...))
}

// Error prints an error message to stderr
func Error(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", SymbolError, msg)
}

// Errorf prints a formatted error message to stderr
func Errorf(format string, args ...any) {
	Error(fmt.Sprintf(format, args...))
}

// Warning prints a warning message to stderr
func Warning(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", SymbolWarning, msg)
}

// Warningf prints a formatted warning message to stderr
func Warningf(format string, args ...any) {
	Warning(fmt.Sprintf(format, args...))
}

// Info prints an informational message to stdout
func Info(msg string) {
	fmt.Printf("%s %s\n", SymbolInfo, msg)
}

// Infof prints a formatted informational message to stdout
func Infof(format string, args ...any) {
	Info(fmt.Sprintf(format, args...))
}

// Header formats a bold section header
func Header(text string) string {
	return Bold.Render(text)
}

// CommandName formats a command name or command line for display
func CommandName(name string) string {
	return Accent.Render(name)
}

// Hint formats muted hint text
func Hint(text string) string {
	return Muted.Render(text)
}
