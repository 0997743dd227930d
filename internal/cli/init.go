package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gosimple/slug"
	"github.com/spf13/cobra"

	"github.com/plzcli/plz/internal/atomicfile"
	"github.com/plzcli/plz/internal/config"
	"github.com/plzcli/plz/internal/settings"
	"github.com/plzcli/plz/internal/ui"
)

const starterDocument = `# plz configuration for this project.
# Run 'plz' to list commands and 'plz docs' for the full guide.
description: Tasks for %[1]s

variables:
  greeting: Hello from plz

commands:
  %[1]s:
    description: Replace me with something useful
    action: echo "{{greeting}}"
`

func newInitCmd() *cobra.Command {
	var global bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter plz.yaml in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if global {
				return scaffoldSettings()
			}
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			return scaffoldDocument(cwd)
		},
	}
	cmd.Flags().BoolVar(&global, "global", false, "create the per-user settings file instead")
	return cmd
}

// scaffoldSettings writes the commented per-user settings template, or
// reports where the existing one lives.
func scaffoldSettings() error {
	path, created, err := settings.CreateDefault()
	if err != nil {
		return err
	}
	if !created {
		ui.Infof("Settings already exist at %s", path)
		return nil
	}
	ui.Successf("Created %s", path)
	return nil
}

// scaffoldDocument writes a commented starter document into dir, refusing
// to touch an existing one under any of the recognized names.
func scaffoldDocument(dir string) error {
	for _, name := range config.FileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return fmt.Errorf("%s already exists", name)
		}
	}

	name := slug.Make(filepath.Base(dir))
	if name == "" {
		name = "hello"
	}

	path := filepath.Join(dir, "plz.yaml")
	content := fmt.Sprintf(starterDocument, name)
	if err := atomicfile.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	ui.Successf("Created plz.yaml with a starter command")
	fmt.Println()
	fmt.Println("Try: " + ui.CommandName("plz "+name))
	return nil
}
