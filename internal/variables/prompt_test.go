package variables

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plzcli/plz/internal/config"
)

func TestPrompterRefusesWithoutTerminal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stdin")
	if err := os.WriteFile(path, []byte("2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	in, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()

	p := &TerminalPrompter{In: in, Out: &strings.Builder{}}

	_, err = p.Prompt(&config.PromptSpec{Message: "Pick one"}, "choice")
	if err == nil {
		t.Fatal("expected an error when prompting without a terminal")
	}
	if !strings.Contains(err.Error(), "needs a terminal") {
		t.Errorf("error = %q, want a terminal requirement message", err)
	}
}
