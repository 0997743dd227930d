// Package config defines the plz.yaml document model.
//
// A document describes a tree of commands, each carrying its own variables
// and optional nested subcommands. Several shapes are polymorphic in YAML
// (a variable can be a bare string or a map, a platform can be one tag or a
// list), so the types here implement custom unmarshalling that tries the
// compact shape first and falls back to the structured one.
package config

import (
	"fmt"
	"sort"

	"github.com/plzcli/plz/internal/platform"
)

// Config is the root of a plz.yaml document. It is constructed once by the
// loader and read-only afterwards.
type Config struct {
	Description string      `yaml:"description,omitempty"`
	Options     Options     `yaml:"options,omitempty"`
	Variables   VariableMap `yaml:"variables,omitempty"`
	Commands    CommandMap  `yaml:"commands,omitempty"`
	Imports     []string    `yaml:"imports,omitempty"`
}

// Options are document-wide switches.
type Options struct {
	// AutoArgs gives every variable without an explicit argument binding a
	// long flag named after its key.
	AutoArgs       bool `yaml:"autoArgs,omitempty"`
	PrintCommands  bool `yaml:"printCommands,omitempty"`
	PrintVariables bool `yaml:"printVariables,omitempty"`
}

// CommandMap maps a unique key to a command definition.
type CommandMap map[string]*CommandDefinition

// VariableMap maps a unique key to a variable definition.
type VariableMap map[string]*VariableDefinition

// CommandDefinition describes one command in the tree.
type CommandDefinition struct {
	// Name overrides the externally visible identifier; the map key is used
	// when it is empty.
	Name        string      `yaml:"name,omitempty"`
	Platform    *Platforms  `yaml:"platform,omitempty"`
	Description string      `yaml:"description,omitempty"`
	Hidden      bool        `yaml:"hidden,omitempty"`
	Variables   VariableMap `yaml:"variables,omitempty"`
	Commands    CommandMap  `yaml:"commands,omitempty"`
	// Action is what the command does when invoked. A command without an
	// action is a grouping node and requires a subcommand.
	Action *Action `yaml:"action,omitempty"`
}

// EffectiveName returns the externally visible identifier for the command
// stored under key.
func (c *CommandDefinition) EffectiveName(key string) string {
	if c.Name != "" {
		return c.Name
	}
	return key
}

// SortedKeys returns the map's keys in sorted order for deterministic
// iteration.
func (m CommandMap) SortedKeys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FindByName returns the definition whose visible name matches name,
// checking each entry's name override before its key.
func (m CommandMap) FindByName(name string) (*CommandDefinition, bool) {
	for _, key := range m.SortedKeys() {
		def := m[key]
		if def.Name == name || key == name {
			return def, true
		}
	}
	return nil, false
}

// SortedKeys returns the map's keys in sorted order for deterministic
// iteration.
func (m VariableMap) SortedKeys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MergedWith returns a copy of m with overlay's definitions on top. A key
// present in both maps resolves to overlay's definition; there is no
// field-level merging.
func (m VariableMap) MergedWith(overlay VariableMap) VariableMap {
	merged := make(VariableMap, len(m)+len(overlay))
	for k, v := range m {
		merged[k] = v
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return merged
}

// VariableKind discriminates the five variable shapes.
type VariableKind int

const (
	// VariableShorthandLiteral is a bare string value.
	VariableShorthandLiteral VariableKind = iota
	// VariableLiteral is a fixed value that may declare an argument binding;
	// the value doubles as that argument's default.
	VariableLiteral
	// VariableExecution obtains its value by running a command.
	VariableExecution
	// VariablePrompt obtains its value by asking the user.
	VariablePrompt
	// VariableArgument takes its value from the command line only.
	VariableArgument
)

// VariableDefinition is one entry in a variable map. Exactly one variant
// field group is populated, discriminated by Kind.
type VariableDefinition struct {
	Kind VariableKind

	// Value holds the literal for the two literal variants.
	Value string

	// Exec holds the execution spec for the execution variant.
	Exec *ExecutionSpec

	// Prompt holds the prompt spec for the prompt variant.
	Prompt *PromptSpec

	// Arg is the explicit argument binding. Optional for every variant
	// except VariableArgument, where it is the variant; never set for
	// VariableShorthandLiteral.
	Arg *ArgumentBinding

	// EnvVarName names the environment variable the resolved value is
	// exported under, and is also consulted when evaluating the variable.
	EnvVarName string
}

func (v *VariableDefinition) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var literal string
	if err := unmarshal(&literal); err == nil {
		v.Kind = VariableShorthandLiteral
		v.Value = literal
		return nil
	}

	var full struct {
		Value      *string          `yaml:"value"`
		Exec       *ExecutionSpec   `yaml:"exec"`
		Prompt     *PromptSpec      `yaml:"prompt"`
		Arg        *ArgumentBinding `yaml:"arg"`
		EnvVarName string           `yaml:"envVarName"`
	}
	if err := unmarshal(&full); err != nil {
		return err
	}

	v.Arg = full.Arg
	v.EnvVarName = full.EnvVarName

	switch {
	case full.Value != nil:
		v.Kind = VariableLiteral
		v.Value = *full.Value
	case full.Exec != nil:
		v.Kind = VariableExecution
		v.Exec = full.Exec
	case full.Prompt != nil:
		v.Kind = VariablePrompt
		v.Prompt = full.Prompt
	case full.Arg != nil:
		v.Kind = VariableArgument
	default:
		return fmt.Errorf("variable needs one of value, exec, prompt, or arg")
	}
	return nil
}

// Binding returns the explicit argument binding carried by the variant, if
// any. Shorthand literals cannot carry one.
func (v *VariableDefinition) Binding() *ArgumentBinding {
	switch v.Kind {
	case VariableLiteral, VariableExecution, VariablePrompt, VariableArgument:
		return v.Arg
	}
	return nil
}

// DefaultValue returns the default for the variable's compiled argument.
// Only the two literal variants carry one.
func (v *VariableDefinition) DefaultValue() (string, bool) {
	switch v.Kind {
	case VariableShorthandLiteral, VariableLiteral:
		return v.Value, true
	}
	return "", false
}

// BindingKind discriminates the three argument binding shapes.
type BindingKind int

const (
	// BindingShorthand surfaces as a long flag with no short form or help.
	BindingShorthand BindingKind = iota
	// BindingNamed surfaces as a long flag with optional short form and help.
	BindingNamed
	// BindingPositional surfaces as a positional slot at a 1-based index.
	BindingPositional
)

// ArgumentBinding describes how a variable surfaces as a grammar argument.
// Exactly one shape is populated, discriminated by Kind.
type ArgumentBinding struct {
	Kind BindingKind

	// Flag is the long flag name for the shorthand shape.
	Flag string

	// Long, Short and Description describe the named shape. Short is a
	// single character.
	Long        string
	Short       string
	Description string

	// Position is the 1-based slot for the positional shape.
	Position int
}

func (b *ArgumentBinding) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err == nil {
		if name == "" {
			return fmt.Errorf("argument flag name cannot be empty")
		}
		b.Kind = BindingShorthand
		b.Flag = name
		return nil
	}

	var full struct {
		Long        string `yaml:"long"`
		Short       string `yaml:"short"`
		Position    int    `yaml:"position"`
		Description string `yaml:"description"`
	}
	if err := unmarshal(&full); err != nil {
		return err
	}
	if len(full.Short) > 1 {
		return fmt.Errorf("short flag must be a single character, got %q", full.Short)
	}

	switch {
	case full.Position > 0 && full.Long != "":
		return fmt.Errorf("argument cannot be both positional and named")
	case full.Position > 0:
		b.Kind = BindingPositional
		b.Position = full.Position
		b.Description = full.Description
	case full.Long != "":
		b.Kind = BindingNamed
		b.Long = full.Long
		b.Short = full.Short
		b.Description = full.Description
	default:
		return fmt.Errorf("argument needs either a long flag name or a position")
	}
	return nil
}

// ActionKind discriminates the two action shapes.
type ActionKind int

const (
	// ActionSingleStep runs one execution.
	ActionSingleStep ActionKind = iota
	// ActionAlias hands control, plus all trailing tokens, to another
	// program.
	ActionAlias
)

// Action is what a command does when invoked.
type Action struct {
	Kind ActionKind

	// Exec is the execution for the single-step shape.
	Exec *ExecutionSpec

	// Alias is the target program for the alias shape.
	Alias string
}

func (a *Action) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var command string
	if err := unmarshal(&command); err == nil {
		if command == "" {
			return fmt.Errorf("action command cannot be empty")
		}
		a.Kind = ActionSingleStep
		a.Exec = &ExecutionSpec{Command: command}
		return nil
	}

	var full struct {
		Exec  *ExecutionSpec `yaml:"exec"`
		Alias string         `yaml:"alias"`
	}
	if err := unmarshal(&full); err != nil {
		return err
	}

	switch {
	case full.Alias != "" && full.Exec != nil:
		return fmt.Errorf("action cannot be both an exec and an alias")
	case full.Alias != "":
		a.Kind = ActionAlias
		a.Alias = full.Alias
	case full.Exec != nil:
		a.Kind = ActionSingleStep
		a.Exec = full.Exec
	default:
		return fmt.Errorf("action needs either an exec or an alias")
	}
	return nil
}

// ExecutionSpec describes how an execution variable or single-step action
// obtains its subprocess. The compact YAML form is a bare command string.
type ExecutionSpec struct {
	Command string
	// Shell optionally names an external interpreter to run the command
	// with, instead of the embedded one.
	Shell string
}

func (e *ExecutionSpec) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var command string
	if err := unmarshal(&command); err == nil {
		if command == "" {
			return fmt.Errorf("execution command cannot be empty")
		}
		e.Command = command
		return nil
	}

	var full struct {
		Command string `yaml:"command"`
		Shell   string `yaml:"shell"`
	}
	if err := unmarshal(&full); err != nil {
		return err
	}
	if full.Command == "" {
		return fmt.Errorf("execution needs a command")
	}
	e.Command = full.Command
	e.Shell = full.Shell
	return nil
}

// PromptSpec describes an interactive prompt. With options it is a
// selection; without, a free-text input.
type PromptSpec struct {
	Message string   `yaml:"message"`
	Options []string `yaml:"options,omitempty"`
}

// Platforms is a platform predicate: one tag or a set of tags.
type Platforms struct {
	Tags []platform.Tag
}

func (p *Platforms) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var one string
	if err := unmarshal(&one); err == nil {
		tag, err := platform.Parse(one)
		if err != nil {
			return err
		}
		p.Tags = []platform.Tag{tag}
		return nil
	}

	var many []string
	if err := unmarshal(&many); err != nil {
		return err
	}
	if len(many) == 0 {
		return fmt.Errorf("platform list cannot be empty")
	}
	p.Tags = make([]platform.Tag, 0, len(many))
	for _, s := range many {
		tag, err := platform.Parse(s)
		if err != nil {
			return err
		}
		p.Tags = append(p.Tags, tag)
	}
	return nil
}

// Matches reports whether tag satisfies the predicate.
func (p *Platforms) Matches(tag platform.Tag) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
