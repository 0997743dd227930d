package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): Primary text
// - Accent (soft purple #A78BFA): Command names, variable references, highlights
// - Muted (gray): Secondary info, hints
// - No colored success/error/warning - use unicode symbols only

const defaultAccentColor = "#A78BFA"

var (
	// Accent style for command names, variable references, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccentColor))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccentColor)).Bold(true)
)

// accentColor is the active accent color, empty when the accent is disabled.
var accentColor = defaultAccentColor

// ConfigureTheme applies a user-chosen accent color to the shared styles.
// It accepts an ANSI 256 color code ("39") or a hex color ("#7aa2f7");
// "none", "off", and "default" disable the accent entirely. An empty or
// unparseable value leaves the current theme untouched.
func ConfigureTheme(accent string) {
	trimmed := strings.ToLower(strings.TrimSpace(accent))
	switch trimmed {
	case "":
		return
	case "none", "off", "default":
		accentColor = ""
		Accent = lipgloss.NewStyle()
		AccentBold = lipgloss.NewStyle().Bold(true)
		return
	}

	color, ok := normalizeAccentColor(trimmed)
	if !ok {
		return
	}
	accentColor = color
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

// AccentColor reports the active accent color and whether one is set.
func AccentColor() (string, bool) {
	if accentColor == "" {
		return "", false
	}
	return accentColor, true
}

// normalizeAccentColor validates and canonicalizes a color value. It returns
// false for disable keywords and anything that is neither an ANSI 256 code
// nor a 3- or 6-digit hex color.
func normalizeAccentColor(input string) (string, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	switch trimmed {
	case "", "none", "off", "default":
		return "", false
	}

	if strings.HasPrefix(trimmed, "#") {
		hex := trimmed[1:]
		if len(hex) == 3 {
			var expanded strings.Builder
			for i := 0; i < 3; i++ {
				expanded.WriteByte(hex[i])
				expanded.WriteByte(hex[i])
			}
			hex = expanded.String()
		}
		if len(hex) != 6 {
			return "", false
		}
		for i := 0; i < len(hex); i++ {
			c := hex[i]
			if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
				return "", false
			}
		}
		return "#" + hex, true
	}

	code, err := strconv.Atoi(trimmed)
	if err != nil || code < 0 || code > 255 {
		return "", false
	}
	return strconv.Itoa(code), true
}
