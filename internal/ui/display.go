package ui

import (
	"os"

	"github.com/charmbracelet/x/term"
)

// DefaultTermWidth is used when stdout is not a terminal or its size
// cannot be determined.
const DefaultTermWidth = 120

// TerminalWidth returns the width to use for wrapped terminal output.
func TerminalWidth() int {
	fd := os.Stdout.Fd()
	if !term.IsTerminal(fd) {
		return DefaultTermWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return DefaultTermWidth
	}
	return width
}
