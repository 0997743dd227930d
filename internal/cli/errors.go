// Package cli assembles the compiled command tree into the plz binary's
// surface: it loads settings and the plz document, compiles the grammar,
// wires run functions onto every node, and attaches the built-in commands.
package cli

import "fmt"

// ExitError carries a process exit code through the command stack. A nil
// Err means the failure was already reported, typically by the child
// process on its own stderr, and only the code should propagate.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }
