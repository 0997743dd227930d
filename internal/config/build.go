package config

import "github.com/plzcli/plz/internal/platform"

// Constructors for assembling documents programmatically. The loader
// produces the same shapes from YAML; these exist for tests and tooling
// that build trees in code.

// ShorthandLiteralVar returns a bare-string literal variable.
func ShorthandLiteralVar(value string) *VariableDefinition {
	return &VariableDefinition{Kind: VariableShorthandLiteral, Value: value}
}

// LiteralVar returns a literal variable that may carry a binding.
func LiteralVar(value string) *VariableDefinition {
	return &VariableDefinition{Kind: VariableLiteral, Value: value}
}

// ExecutionVar returns a variable evaluated by running command.
func ExecutionVar(command string) *VariableDefinition {
	return &VariableDefinition{Kind: VariableExecution, Exec: &ExecutionSpec{Command: command}}
}

// PromptVar returns a variable evaluated by prompting the user.
func PromptVar(message string, options ...string) *VariableDefinition {
	return &VariableDefinition{Kind: VariablePrompt, Prompt: &PromptSpec{Message: message, Options: options}}
}

// ArgumentVar returns a variable whose value comes from the command line
// only. The binding is mandatory.
func ArgumentVar(binding *ArgumentBinding) *VariableDefinition {
	return &VariableDefinition{Kind: VariableArgument, Arg: binding}
}

// WithBinding attaches an explicit argument binding and returns v.
func (v *VariableDefinition) WithBinding(binding *ArgumentBinding) *VariableDefinition {
	v.Arg = binding
	return v
}

// WithEnvVar sets the exported environment variable name and returns v.
func (v *VariableDefinition) WithEnvVar(name string) *VariableDefinition {
	v.EnvVarName = name
	return v
}

// ShorthandBinding returns a long-flag-only binding.
func ShorthandBinding(name string) *ArgumentBinding {
	return &ArgumentBinding{Kind: BindingShorthand, Flag: name}
}

// NamedBinding returns a long/short flag binding with help text.
func NamedBinding(long, short, description string) *ArgumentBinding {
	return &ArgumentBinding{Kind: BindingNamed, Long: long, Short: short, Description: description}
}

// PositionalBinding returns a positional binding at a 1-based index.
func PositionalBinding(position int, description string) *ArgumentBinding {
	return &ArgumentBinding{Kind: BindingPositional, Position: position, Description: description}
}

// ExecAction returns a single-step action running command.
func ExecAction(command string) *Action {
	return &Action{Kind: ActionSingleStep, Exec: &ExecutionSpec{Command: command}}
}

// AliasAction returns an alias action targeting another program.
func AliasAction(target string) *Action {
	return &Action{Kind: ActionAlias, Alias: target}
}

// OnPlatforms returns a platform predicate over the given tags.
func OnPlatforms(tags ...platform.Tag) *Platforms {
	return &Platforms{Tags: tags}
}
