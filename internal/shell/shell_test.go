package shell

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/plzcli/plz/internal/config"
)

func newTestRunner(t *testing.T, stdout *bytes.Buffer) *Runner {
	t.Helper()
	return &Runner{
		Dir:    t.TempDir(),
		Env:    []string{"PATH=/usr/bin:/bin", "GREETING=hello"},
		Stdin:  strings.NewReader(""),
		Stdout: stdout,
		Stderr: &bytes.Buffer{},
	}
}

func TestRunEmbedded(t *testing.T) {
	var out bytes.Buffer
	r := newTestRunner(t, &out)

	code, err := r.Run(context.Background(), &config.ExecutionSpec{Command: `echo "Hello, World!"`})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if got := out.String(); got != "Hello, World!\n" {
		t.Errorf("stdout = %q, want %q", got, "Hello, World!\n")
	}
}

func TestRunReportsExitCode(t *testing.T) {
	var out bytes.Buffer
	r := newTestRunner(t, &out)

	code, err := r.Run(context.Background(), &config.ExecutionSpec{Command: "exit 3"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if code != 3 {
		t.Errorf("exit code = %d, want 3", code)
	}
}

func TestRunParseError(t *testing.T) {
	var out bytes.Buffer
	r := newTestRunner(t, &out)

	_, err := r.Run(context.Background(), &config.ExecutionSpec{Command: "if then fi"})
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !strings.Contains(err.Error(), "failed to parse command") {
		t.Errorf("error = %q, want a parse failure message", err)
	}
}

func TestRunSeesEnvironment(t *testing.T) {
	var out bytes.Buffer
	r := newTestRunner(t, &out)

	if _, err := r.Run(context.Background(), &config.ExecutionSpec{Command: "echo $GREETING"}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "hello" {
		t.Errorf("stdout = %q, want hello", got)
	}
}

func TestCaptureTrimsTrailingNewline(t *testing.T) {
	r := newTestRunner(t, &bytes.Buffer{})

	got, err := r.Capture(context.Background(), &config.ExecutionSpec{Command: "echo captured"})
	if err != nil {
		t.Fatalf("Capture returned error: %v", err)
	}
	if got != "captured" {
		t.Errorf("Capture = %q, want %q", got, "captured")
	}
}

func TestCaptureFailsOnNonZeroExit(t *testing.T) {
	r := newTestRunner(t, &bytes.Buffer{})

	_, err := r.Capture(context.Background(), &config.ExecutionSpec{Command: "exit 1"})
	if err == nil {
		t.Fatal("expected an error for a failing capture")
	}
	if !strings.Contains(err.Error(), "exited with code 1") {
		t.Errorf("error = %q, want an exit code message", err)
	}
}

func TestCaptureDoesNotTouchRunnerStdout(t *testing.T) {
	var out bytes.Buffer
	r := newTestRunner(t, &out)

	if _, err := r.Capture(context.Background(), &config.ExecutionSpec{Command: "echo quiet"}); err != nil {
		t.Fatalf("Capture returned error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("captured output leaked to the runner's stdout: %q", out.String())
	}
}
