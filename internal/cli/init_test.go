package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gosimple/slug"

	"github.com/plzcli/plz/internal/config"
)

func TestScaffoldDocumentCreatesValidDocument(t *testing.T) {
	dir := t.TempDir()

	if err := scaffoldDocument(dir); err != nil {
		t.Fatalf("scaffoldDocument() error = %v", err)
	}

	cfg, err := config.Load(filepath.Join(dir, "plz.yaml"))
	if err != nil {
		t.Fatalf("the scaffold does not parse: %v", err)
	}
	if len(cfg.Commands) == 0 {
		t.Fatal("expected the scaffold to define at least one command")
	}

	name := slug.Make(filepath.Base(dir))
	if _, ok := cfg.Commands[name]; !ok {
		t.Fatalf("expected a command named after the directory (%q), got %v", name, cfg.Commands.SortedKeys())
	}
}

func TestScaffoldDocumentRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	if err := scaffoldDocument(dir); err != nil {
		t.Fatalf("first scaffold: %v", err)
	}

	err := scaffoldDocument(dir)
	if err == nil {
		t.Fatal("expected an error on the second scaffold")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected an already-exists error, got %v", err)
	}
}

func TestScaffoldDocumentRespectsHiddenVariant(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".plz.yaml"), []byte("commands: {}\n"), 0o644); err != nil {
		t.Fatalf("seed write: %v", err)
	}

	if err := scaffoldDocument(dir); err == nil {
		t.Fatal("expected an error when .plz.yaml already exists")
	}
}
