package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileNames are the document names Discover looks for, in order.
var FileNames = []string{"plz.yaml", ".plz.yaml", "plz.yml", ".plz.yml"}

// ErrNotFound indicates no plz document exists in the starting directory or
// any of its parents.
var ErrNotFound = errors.New("no plz.yaml found")

// Load reads and parses the document at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse unmarshals document bytes. source appears in error messages only.
func Parse(data []byte, source string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", source, err)
	}

	if cfg.Variables == nil {
		cfg.Variables = VariableMap{}
	}
	if cfg.Commands == nil {
		cfg.Commands = CommandMap{}
	}
	return &cfg, nil
}

// Discover walks up from dir looking for a plz document and returns the
// path of the first match, or ErrNotFound.
func Discover(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}
