// Package shell runs execution specs, either through the embedded POSIX
// interpreter or through an external shell when the spec names one.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/plzcli/plz/internal/config"
)

// Runner executes commands with a fixed working directory, environment, and
// standard streams.
type Runner struct {
	Dir    string
	Env    []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Runner bound to the current process's directory, environment,
// and standard streams.
func New() *Runner {
	dir, _ := os.Getwd()
	return &Runner{
		Dir:    dir,
		Env:    os.Environ(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes spec and returns its exit code. A non-zero exit code is not
// an error; the error return is reserved for failing to parse or start the
// command at all.
func (r *Runner) Run(ctx context.Context, spec *config.ExecutionSpec) (int, error) {
	if spec.Shell != "" {
		return r.runExternal(ctx, spec, r.Stdout)
	}
	return r.runEmbedded(ctx, spec, r.Stdout)
}

// Capture executes spec and returns its standard output with the trailing
// newline removed. A non-zero exit code is an error here, since the caller
// wanted a value, not a side effect.
func (r *Runner) Capture(ctx context.Context, spec *config.ExecutionSpec) (string, error) {
	var buf bytes.Buffer
	var code int
	var err error
	if spec.Shell != "" {
		code, err = r.runExternal(ctx, spec, &buf)
	} else {
		code, err = r.runEmbedded(ctx, spec, &buf)
	}
	if err != nil {
		return "", err
	}
	if code != 0 {
		return "", fmt.Errorf("command %q exited with code %d", spec.Command, code)
	}
	return strings.TrimRight(buf.String(), "\r\n"), nil
}

func (r *Runner) runEmbedded(ctx context.Context, spec *config.ExecutionSpec, stdout io.Writer) (int, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(spec.Command), "")
	if err != nil {
		return 1, fmt.Errorf("failed to parse command %q: %w", spec.Command, err)
	}

	runner, err := interp.New(
		interp.Dir(r.Dir),
		interp.Env(expand.ListEnviron(r.Env...)),
		interp.StdIO(r.Stdin, stdout, r.Stderr),
	)
	if err != nil {
		return 1, fmt.Errorf("failed to create interpreter: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return int(status), nil
		}
		return 1, err
	}
	return 0, nil
}

func (r *Runner) runExternal(ctx context.Context, spec *config.ExecutionSpec, stdout io.Writer) (int, error) {
	cmd := exec.CommandContext(ctx, spec.Shell, "-c", spec.Command)
	cmd.Dir = r.Dir
	cmd.Env = r.Env
	cmd.Stdin = r.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 1, fmt.Errorf("failed to run %s: %w", spec.Shell, err)
	}
	return 0, nil
}
