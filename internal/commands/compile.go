// Package commands compiles a configuration's command tree into a Cobra
// command grammar. Compilation is pure construction: platform filtering,
// scope merging, and argument derivation all happen here, but nothing is
// executed and no run functions are attached.
package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/plzcli/plz/internal/args"
	"github.com/plzcli/plz/internal/config"
	"github.com/plzcli/plz/internal/platform"
)

// Node is one compiled command: the Cobra command that parses it, the
// argument specs derived from its merged variable scope, and its compiled
// children keyed by visible name.
type Node struct {
	Name               string
	Command            *cobra.Command
	Specs              []args.Spec
	RequiresSubcommand bool
	Children           map[string]*Node
}

// CompileRoot compiles a full configuration into the root grammar node.
// The root command carries the configuration's description and root-level
// variables; it never has an action of its own, so it always requires a
// subcommand.
func CompileRoot(cfg *config.Config, provider platform.Provider, version string) (*Node, error) {
	specs := deriveSpecs(cfg.Options, cfg.Variables)

	root := &cobra.Command{
		Use:     useLine("plz", specs),
		Short:   cfg.Description,
		Version: version,
	}
	if err := applySpecs(root, specs); err != nil {
		return nil, err
	}

	children, err := compileLevel(cfg.Options, cfg.Commands, cfg.Variables, provider)
	if err != nil {
		return nil, err
	}
	addChildren(root, children)

	return &Node{
		Name:               root.Name(),
		Command:            root,
		Specs:              specs,
		RequiresSubcommand: true,
		Children:           children,
	}, nil
}

// compileLevel compiles one sibling set. Definitions for other platforms are
// dropped before anything else, so an excluded parent takes its whole subtree
// with it. Each kept definition inherits the caller's variable scope, merged
// with its own variables shadowing on key collision.
func compileLevel(opts config.Options, cmds config.CommandMap, inherited config.VariableMap, provider platform.Provider) (map[string]*Node, error) {
	current := provider.Current()

	var kept []string
	for _, key := range cmds.SortedKeys() {
		def := cmds[key]
		if def.Platform != nil && !def.Platform.Matches(current) {
			continue
		}
		kept = append(kept, key)
	}

	if err := checkNameClaims(cmds, kept); err != nil {
		return nil, err
	}

	nodes := make(map[string]*Node)
	for _, key := range kept {
		def := cmds[key]
		name := def.EffectiveName(key)
		merged := inherited.MergedWith(def.Variables)

		specs := deriveSpecs(opts, merged)
		if def.Action != nil && def.Action.Kind == config.ActionAlias {
			for _, spec := range specs {
				if spec.VarKey == args.AliasArgsName {
					return nil, fmt.Errorf("command %q: variable %q collides with the pass-through argument reserved for alias commands", name, args.AliasArgsName)
				}
			}
			specs = append(specs, args.Spec{
				VarKey:      args.AliasArgsName,
				Help:        "Arguments and options for the aliased command.",
				Multi:       true,
				AllowHyphen: true,
			})
		}

		children, err := compileLevel(opts, def.Commands, merged, provider)
		if err != nil {
			return nil, err
		}

		cmd := &cobra.Command{
			Use:    useLine(name, specs),
			Short:  def.Description,
			Hidden: def.Hidden,
		}
		if err := applySpecs(cmd, specs); err != nil {
			return nil, fmt.Errorf("command %q: %w", name, err)
		}
		addChildren(cmd, children)

		nodes[name] = &Node{
			Name:               name,
			Command:            cmd,
			Specs:              specs,
			RequiresSubcommand: def.Action == nil,
			Children:           children,
		}
	}
	return nodes, nil
}

// checkNameClaims rejects sibling sets where a visible name maps back to more
// than one definition. A definition answers to its key and to its name
// override, so a sibling's override can collide with another sibling's key
// even when the visible names themselves differ.
func checkNameClaims(cmds config.CommandMap, kept []string) error {
	for _, key := range kept {
		def := cmds[key]
		name := def.EffectiveName(key)
		owner := ""
		for _, otherKey := range kept {
			other := cmds[otherKey]
			if otherKey == name || other.Name == name {
				if owner != "" {
					return fmt.Errorf("command name %q is claimed by both %q and %q", name, owner, otherKey)
				}
				owner = otherKey
			}
		}
	}
	return nil
}

func addChildren(cmd *cobra.Command, children map[string]*Node) {
	names := make([]string, 0, len(children))
	for name := range children {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd.AddCommand(children[name].Command)
	}
}

// Passthrough reports whether this command hands every trailing token to an
// aliased program instead of parsing it.
func (n *Node) Passthrough() bool {
	for _, spec := range n.Specs {
		if spec.Multi {
			return true
		}
	}
	return false
}

// PassthroughTokens completes the flag parsing Cobra skipped for a
// pass-through command: leading known flags are parsed into the command's
// flag set and everything from the first unrecognized token on is returned
// verbatim. It also reports whether help was requested in the leading run.
func (n *Node) PassthroughTokens(raw []string) (trailing []string, help bool, err error) {
	flags := n.Command.Flags()
	leading, trailing := args.SplitPassthrough(flags, raw)
	if err := flags.Parse(leading); err != nil {
		return nil, false, err
	}
	if f := flags.Lookup("help"); f != nil && f.Changed {
		return trailing, true, nil
	}
	return trailing, false, nil
}

// InvocationFor reconstructs the invocation chain for a matched command by
// pairing the Cobra parent chain with this grammar's nodes. The positional
// tokens belong to the deepest command; ancestors only ever carry flags.
func (n *Node) InvocationFor(matched *cobra.Command, positional []string) (*args.Invocation, error) {
	var path []*cobra.Command
	for c := matched; c != nil; c = c.Parent() {
		path = append(path, c)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	if path[0] != n.Command {
		return nil, fmt.Errorf("command %q does not belong to this grammar", matched.Name())
	}

	inv := &args.Invocation{
		Name:  n.Name,
		Scope: args.NewCobraResolver(n.Command, n.Specs, nil),
	}
	node, tail := n, inv
	for _, c := range path[1:] {
		child, ok := node.Children[c.Name()]
		if !ok {
			return nil, fmt.Errorf("matched command %q has no grammar node under %q", c.Name(), node.Name)
		}
		var tokens []string
		if c == matched {
			tokens = positional
		}
		sub := &args.Invocation{
			Name:  child.Name,
			Scope: args.NewCobraResolver(c, child.Specs, tokens),
		}
		tail.Sub = sub
		node, tail = child, sub
	}
	return inv, nil
}
