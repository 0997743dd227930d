// Package args bridges parsed invocations and the variables that feed on
// them. The Resolver interface is the only view the rest of the system has
// of the parsing engine's match result, so compilation and resolution can
// be exercised against a plain map in tests.
package args

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// AliasArgsName is the reserved identifier of the implicit trailing
// argument attached to alias commands. User variables must not claim it.
const AliasArgsName = "ARGS"

// Resolver looks up argument values captured by a parsed invocation.
//
// Get returns the single value bound to key, or false when the invocation
// did not set it. GetMany returns every value bound to a multi-valued
// argument; absent reports false and is distinct from an empty list.
// Lookups have no side effects.
type Resolver interface {
	Get(key string) (string, bool)
	GetMany(key string) ([]string, bool)
}

// Spec links one variable to the grammar argument compiled for it. VarKey
// is the variable's key; that link is how resolution reunites a parsed
// value with its originating variable.
type Spec struct {
	VarKey string

	// Long and Short describe a flag argument. Position is the 1-based
	// slot of a positional argument; flag fields and Position are mutually
	// exclusive.
	Long     string
	Short    string
	Position int

	Help       string
	Default    string
	HasDefault bool

	// Multi marks a trailing variadic argument that consumes every
	// remaining token. AllowHyphen lets it swallow flag-like tokens.
	Multi       bool
	AllowHyphen bool
}

// Invocation is the engine-independent view of one matched level: the name
// the engine selected, the local lookup scope, and the matched child, if
// any. An Invocation with a nil Sub is the leaf of the matched path.
type Invocation struct {
	Name  string
	Scope Resolver
	Sub   *Invocation
}

// CobraResolver adapts a matched cobra command's parse result to the
// Resolver interface, using the command's compiled argument specs to
// translate variable keys into flag or positional lookups.
type CobraResolver struct {
	specs      map[string]Spec
	flags      *pflag.FlagSet
	positional []string
	// trailing is where the variadic argument's tokens start within
	// positional, after any fixed positional slots.
	trailing int
}

// NewCobraResolver builds a resolver over cmd's parsed flags and the
// positional tokens the engine left at this level.
func NewCobraResolver(cmd *cobra.Command, specs []Spec, positional []string) *CobraResolver {
	byKey := make(map[string]Spec, len(specs))
	trailing := 0
	for _, s := range specs {
		byKey[s.VarKey] = s
		if s.Position > trailing {
			trailing = s.Position
		}
	}
	return &CobraResolver{
		specs:      byKey,
		flags:      cmd.Flags(),
		positional: positional,
		trailing:   trailing,
	}
}

func (r *CobraResolver) Get(key string) (string, bool) {
	spec, ok := r.specs[key]
	if !ok {
		return "", false
	}

	if spec.Multi {
		values, ok := r.GetMany(key)
		if !ok || len(values) == 0 {
			return "", false
		}
		return values[0], true
	}

	if spec.Position > 0 {
		if spec.Position <= len(r.positional) {
			return r.positional[spec.Position-1], true
		}
		if spec.HasDefault {
			return spec.Default, true
		}
		return "", false
	}

	flag := r.flags.Lookup(spec.Long)
	if flag == nil {
		return "", false
	}
	if flag.Changed || spec.HasDefault {
		return flag.Value.String(), true
	}
	return "", false
}

func (r *CobraResolver) GetMany(key string) ([]string, bool) {
	spec, ok := r.specs[key]
	if !ok {
		return nil, false
	}

	if spec.Multi {
		if r.trailing >= len(r.positional) {
			return nil, false
		}
		return append([]string(nil), r.positional[r.trailing:]...), true
	}

	value, ok := r.Get(key)
	if !ok {
		return nil, false
	}
	return []string{value}, true
}
