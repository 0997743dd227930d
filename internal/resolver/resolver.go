// Package resolver selects the command definition a parsed invocation
// refers to.
package resolver

import (
	"fmt"

	"github.com/plzcli/plz/internal/args"
	"github.com/plzcli/plz/internal/commands"
	"github.com/plzcli/plz/internal/config"
)

// Resolution is the outcome of resolving an invocation: the deepest matched
// command, every variable definition visible to it, and the argument scope
// of its own invocation level.
type Resolution struct {
	Command   *config.CommandDefinition
	Variables config.VariableMap
	Scope     args.Resolver
}

// Resolve walks the matched invocation chain alongside the grammar and the
// configuration tree and returns the deepest matched command. A nil result
// with a nil error means the invocation never descended into a subcommand.
//
// Lookup failures here are not user errors: the grammar was compiled from
// the same configuration, so a name that parsed but cannot be resolved means
// the two have diverged.
func Resolve(inv *args.Invocation, node *commands.Node, cmds config.CommandMap, inherited config.VariableMap) (*Resolution, error) {
	sub := inv.Sub
	if sub == nil {
		return nil, nil
	}

	child, ok := node.Children[sub.Name]
	if !ok {
		return nil, fmt.Errorf("matched command %q has no grammar node under %q", sub.Name, node.Name)
	}
	def, ok := cmds.FindByName(sub.Name)
	if !ok {
		return nil, fmt.Errorf("matched command %q has no definition under %q", sub.Name, node.Name)
	}

	visible := inherited.MergedWith(def.Variables)

	deeper, err := Resolve(sub, child, def.Commands, visible)
	if err != nil {
		return nil, err
	}
	if deeper != nil {
		return deeper, nil
	}

	return &Resolution{Command: def, Variables: visible, Scope: sub.Scope}, nil
}
