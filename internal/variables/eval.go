// Package variables turns a resolved variable scope into concrete string
// values, one per variable, ready for templating and export.
package variables

import (
	"context"
	"fmt"
	"os"

	"github.com/plzcli/plz/internal/args"
	"github.com/plzcli/plz/internal/config"
)

// CaptureFunc runs an execution spec and returns its trimmed output.
type CaptureFunc func(context.Context, *config.ExecutionSpec) (string, error)

// PromptFunc asks the user for a value. key names the variable being filled.
type PromptFunc func(spec *config.PromptSpec, key string) (string, error)

// Evaluator resolves variable definitions to values. Every source is
// injectable so evaluation can run without a real terminal or subprocess.
type Evaluator struct {
	Scope   args.Resolver
	Environ func(string) (string, bool)
	Capture CaptureFunc
	Prompt  PromptFunc
}

// NewEvaluator returns an Evaluator over the given invocation scope, reading
// the process environment and using the supplied capture and prompt sources.
func NewEvaluator(scope args.Resolver, capture CaptureFunc, prompt PromptFunc) *Evaluator {
	return &Evaluator{
		Scope:   scope,
		Environ: os.LookupEnv,
		Capture: capture,
		Prompt:  prompt,
	}
}

// EvaluateAll resolves every variable in scope. Evaluation order follows the
// sorted keys so prompts and executions fire in a stable order.
func (e *Evaluator) EvaluateAll(ctx context.Context, scope config.VariableMap) (map[string]string, error) {
	values := make(map[string]string, len(scope))
	for _, key := range scope.SortedKeys() {
		value, err := e.Evaluate(ctx, key, scope[key])
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate variable %q: %w", key, err)
		}
		values[key] = value
	}
	return values, nil
}

// Evaluate resolves a single variable. An argument value from the invocation
// wins over everything, then a declared environment variable, then the
// definition's own source. Argument-only variables with no value are an
// error because there is nothing left to fall back to.
func (e *Evaluator) Evaluate(ctx context.Context, key string, def *config.VariableDefinition) (string, error) {
	if e.Scope != nil {
		if value, ok := e.Scope.Get(key); ok {
			return value, nil
		}
	}
	if def.EnvVarName != "" && e.Environ != nil {
		if value, ok := e.Environ(def.EnvVarName); ok {
			return value, nil
		}
	}

	switch def.Kind {
	case config.VariableShorthandLiteral, config.VariableLiteral:
		return def.Value, nil
	case config.VariableExecution:
		if e.Capture == nil {
			return "", fmt.Errorf("no executor available to evaluate %q", key)
		}
		return e.Capture(ctx, def.Exec)
	case config.VariablePrompt:
		if e.Prompt == nil {
			return "", fmt.Errorf("no prompter available to evaluate %q", key)
		}
		return e.Prompt(def.Prompt, key)
	case config.VariableArgument:
		return "", fmt.Errorf("missing required argument %s", bindingName(key, def))
	default:
		return "", fmt.Errorf("unsupported variable kind %d", def.Kind)
	}
}

// EnvOverlay returns NAME=value pairs for every variable that declares an
// environment variable name, in deterministic order.
func EnvOverlay(scope config.VariableMap, values map[string]string) []string {
	var overlay []string
	for _, key := range scope.SortedKeys() {
		def := scope[key]
		if def.EnvVarName == "" {
			continue
		}
		value, ok := values[key]
		if !ok {
			continue
		}
		overlay = append(overlay, def.EnvVarName+"="+value)
	}
	return overlay
}

func bindingName(key string, def *config.VariableDefinition) string {
	b := def.Binding()
	if b == nil {
		return fmt.Sprintf("for %q", key)
	}
	switch b.Kind {
	case config.BindingPositional:
		return fmt.Sprintf("at position %d", b.Position)
	case config.BindingNamed:
		return "--" + b.Long
	default:
		return "--" + b.Flag
	}
}
