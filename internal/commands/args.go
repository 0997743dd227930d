package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/plzcli/plz/internal/args"
	"github.com/plzcli/plz/internal/config"
)

// deriveSpecs turns a command's merged variable scope into argument specs.
// Explicit bindings always win; when autoArgs is on, every unbound variable
// gets a long flag named after its key.
func deriveSpecs(opts config.Options, scope config.VariableMap) []args.Spec {
	var specs []args.Spec
	for _, key := range scope.SortedKeys() {
		def := scope[key]
		binding := def.Binding()
		if binding == nil {
			if !opts.AutoArgs {
				continue
			}
			binding = config.ShorthandBinding(key)
		}

		spec := args.Spec{VarKey: key, Help: binding.Description}
		switch binding.Kind {
		case config.BindingPositional:
			spec.Position = binding.Position
		case config.BindingNamed:
			spec.Long = binding.Long
			spec.Short = binding.Short
		default:
			spec.Long = binding.Flag
		}
		if value, ok := def.DefaultValue(); ok {
			spec.Default = value
			spec.HasDefault = true
		}
		specs = append(specs, spec)
	}
	return specs
}

// applySpecs registers the derived specs on a Cobra command: flags for the
// named ones, an Args validator for the positional ones, and pass-through
// parsing when a trailing variadic spec is present.
func applySpecs(cmd *cobra.Command, specs []args.Spec) error {
	longSeen := make(map[string]string)
	shortSeen := make(map[string]string)
	positions := make(map[int]string)

	minArgs, maxArgs := 0, 0
	variadic := false

	for _, spec := range specs {
		if spec.Multi {
			variadic = true
			continue
		}
		if spec.Position > 0 {
			if other, ok := positions[spec.Position]; ok {
				return fmt.Errorf("variables %q and %q both claim position %d", other, spec.VarKey, spec.Position)
			}
			positions[spec.Position] = spec.VarKey
			if spec.Position > maxArgs {
				maxArgs = spec.Position
			}
			if !spec.HasDefault {
				minArgs++
			}
			continue
		}

		if other, ok := longSeen[spec.Long]; ok {
			return fmt.Errorf("variables %q and %q both claim flag --%s", other, spec.VarKey, spec.Long)
		}
		longSeen[spec.Long] = spec.VarKey
		if spec.Short != "" {
			if other, ok := shortSeen[spec.Short]; ok {
				return fmt.Errorf("variables %q and %q both claim flag -%s", other, spec.VarKey, spec.Short)
			}
			shortSeen[spec.Short] = spec.VarKey
		}

		cmd.Flags().StringP(spec.Long, spec.Short, spec.Default, spec.Help)
	}

	if variadic {
		// Pass-through commands take over parsing: leading known flags are
		// split off at run time and everything else flows through untouched,
		// hyphens included.
		cmd.DisableFlagParsing = true
		cmd.Args = cobra.ArbitraryArgs
		return nil
	}

	if minArgs == maxArgs {
		if minArgs == 0 {
			cmd.Args = cobra.NoArgs
		} else {
			cmd.Args = cobra.ExactArgs(minArgs)
		}
	} else {
		cmd.Args = cobra.RangeArgs(minArgs, maxArgs)
	}
	return nil
}

// useLine builds the one-line usage string: the command name followed by
// <required> and [optional] positional slots in order, then [ARGS...] for a
// trailing variadic.
func useLine(name string, specs []args.Spec) string {
	type slot struct {
		position int
		key      string
		optional bool
	}
	var slots []slot
	variadic := false
	for _, spec := range specs {
		if spec.Multi {
			variadic = true
			continue
		}
		if spec.Position > 0 {
			slots = append(slots, slot{position: spec.Position, key: spec.VarKey, optional: spec.HasDefault})
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].position < slots[j].position })

	use := name
	for _, s := range slots {
		if s.optional {
			use += fmt.Sprintf(" [%s]", s.key)
		} else {
			use += fmt.Sprintf(" <%s>", s.key)
		}
	}
	if variadic {
		use += fmt.Sprintf(" [%s...]", args.AliasArgsName)
	}
	return use
}
