package settings

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/plzcli/plz/internal/atomicfile"
)

type persistedSettings struct {
	Shell   *string              `toml:"shell,omitempty"`
	UI      *persistedUISettings `toml:"ui,omitempty"`
	History *persistedHistory    `toml:"history,omitempty"`
}

type persistedUISettings struct {
	Accent    *string `toml:"accent,omitempty"`
	CodeTheme *string `toml:"code_theme,omitempty"`
}

type persistedHistory struct {
	Disabled *bool   `toml:"disabled,omitempty"`
	Path     *string `toml:"path,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// SaveTo writes the global config to a specific path atomically.
func SaveTo(path string, s *Settings) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if s == nil {
		s = &Settings{}
	}

	out := persistedSettings{
		Shell: nonEmptyPtr(s.Shell),
	}

	accent := nonEmptyPtr(s.UI.Accent)
	codeTheme := nonEmptyPtr(s.UI.CodeTheme)
	if accent != nil || codeTheme != nil {
		out.UI = &persistedUISettings{
			Accent:    accent,
			CodeTheme: codeTheme,
		}
	}

	historyPath := nonEmptyPtr(s.History.Path)
	if s.History.Disabled || historyPath != nil {
		disabled := s.History.Disabled
		out.History = &persistedHistory{Path: historyPath}
		if disabled {
			out.History.Disabled = &disabled
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}
