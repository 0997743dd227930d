// Package settings handles global plz configuration. Project-level command
// definitions live in plz.yaml; this covers the per-user preferences that
// apply across projects.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/plzcli/plz/internal/atomicfile"
)

// Settings represents the global plz configuration.
type Settings struct {
	// Shell overrides the interpreter used for actions. Empty means the
	// embedded POSIX interpreter.
	Shell string `toml:"shell"`

	// UI controls optional CLI theming preferences.
	UI UISettings `toml:"ui"`

	// History controls invocation history recording.
	History HistorySettings `toml:"history"`
}

// UISettings represents optional CLI theming preferences.
type UISettings struct {
	// Accent is an optional accent color for CLI output and markdown
	// rendering. Supported values are ANSI color codes ("0" to "255") or
	// hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used for rendered markdown
	// code blocks. Example values: "monokai", "dracula", "github", "nord".
	CodeTheme string `toml:"code_theme"`
}

// HistorySettings represents invocation history preferences.
type HistorySettings struct {
	// Disabled turns off history recording entirely.
	Disabled bool `toml:"disabled"`

	// Path overrides the history database location.
	Path string `toml:"path"`
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Settings, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Settings{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Settings, error) {
	var settings Settings
	if _, err := toml.DecodeFile(path, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &settings, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/plz/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	// Prefer XDG-style ~/.config/plz/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "plz", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	// Fall back to XDG config dir or OS-specific location
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "plz", "config.toml")
	}

	// Last resort fallback
	return filepath.Join(".", "config.toml")
}

const defaultConfig = `# plz configuration
# Project commands are defined in plz.yaml; this file holds personal
# preferences that apply everywhere.

# Shell used to run actions instead of the built-in interpreter.
# shell = "bash"

# Invocation history (stored in a local SQLite database).
# [history]
# disabled = false
# path = "/custom/path/history.db"

# Optional UI accent color for terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
# code_theme = "monokai"
`

// CreateDefault writes a commented template to the default config path. It
// reports the path and whether a new file was written; an existing file is
// left alone.
func CreateDefault() (string, bool, error) {
	return createDefaultAt(DefaultPath())
}

func createDefaultAt(path string) (string, bool, error) {
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := atomicfile.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config: %w", err)
	}
	return path, true, nil
}
