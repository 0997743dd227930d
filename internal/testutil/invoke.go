package testutil

import (
	"io"
	"testing"

	"github.com/spf13/cobra"

	"github.com/plzcli/plz/internal/args"
	"github.com/plzcli/plz/internal/commands"
)

// ParseInvocation runs a compiled grammar against argv and returns the
// invocation chain for whichever command matched. It fails the test when
// parsing fails or nothing runs.
func ParseInvocation(t *testing.T, root *commands.Node, argv []string) *args.Invocation {
	t.Helper()

	var matched *commands.Node
	var tokens []string
	wireCapture(root, func(n *commands.Node, a []string) {
		matched = n
		tokens = a
	})

	root.Command.SetArgs(argv)
	root.Command.SetOut(io.Discard)
	root.Command.SetErr(io.Discard)
	if err := root.Command.Execute(); err != nil {
		t.Fatalf("Execute(%v) returned error: %v", argv, err)
	}
	if matched == nil {
		t.Fatalf("no command ran for %v", argv)
	}

	inv, err := root.InvocationFor(matched.Command, tokens)
	if err != nil {
		t.Fatalf("InvocationFor(%v) returned error: %v", argv, err)
	}
	return inv
}

func wireCapture(node *commands.Node, capture func(*commands.Node, []string)) {
	n := node
	n.Command.RunE = func(_ *cobra.Command, a []string) error {
		tokens := a
		if n.Passthrough() {
			trailing, _, err := n.PassthroughTokens(a)
			if err != nil {
				return err
			}
			tokens = trailing
		}
		capture(n, tokens)
		return nil
	}
	for _, child := range node.Children {
		wireCapture(child, capture)
	}
}
