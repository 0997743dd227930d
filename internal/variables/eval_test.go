package variables

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/plzcli/plz/internal/config"
	"github.com/plzcli/plz/internal/testutil"
)

func noEnv(string) (string, bool) { return "", false }

func staticEnv(vars map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func TestEvaluatePrecedence(t *testing.T) {
	def := config.LiteralVar("intrinsic").WithBinding(config.ShorthandBinding("val")).WithEnvVar("PLZ_VAL")

	tests := []struct {
		name  string
		scope *testutil.Resolver
		env   func(string) (string, bool)
		want  string
	}{
		{
			name:  "argument wins over everything",
			scope: &testutil.Resolver{Values: map[string]string{"val": "from-arg"}},
			env:   staticEnv(map[string]string{"PLZ_VAL": "from-env"}),
			want:  "from-arg",
		},
		{
			name:  "environment wins over the definition",
			scope: &testutil.Resolver{},
			env:   staticEnv(map[string]string{"PLZ_VAL": "from-env"}),
			want:  "from-env",
		},
		{
			name:  "definition value is the last resort",
			scope: &testutil.Resolver{},
			env:   noEnv,
			want:  "intrinsic",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Evaluator{Scope: tt.scope, Environ: tt.env}
			got, err := e.Evaluate(context.Background(), "val", def)
			if err != nil {
				t.Fatalf("Evaluate returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Evaluate = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEvaluateExecutionCapturesOutput(t *testing.T) {
	var ran *config.ExecutionSpec
	e := &Evaluator{
		Scope:   &testutil.Resolver{},
		Environ: noEnv,
		Capture: func(_ context.Context, spec *config.ExecutionSpec) (string, error) {
			ran = spec
			return "captured", nil
		},
	}

	def := config.ExecutionVar("git rev-parse --short HEAD")
	got, err := e.Evaluate(context.Background(), "sha", def)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if got != "captured" {
		t.Errorf("Evaluate = %q, want captured", got)
	}
	if ran == nil || ran.Command != "git rev-parse --short HEAD" {
		t.Errorf("capture ran %+v, want the definition's spec", ran)
	}
}

func TestEvaluatePromptFiresOnlyAsLastResort(t *testing.T) {
	prompted := 0
	e := &Evaluator{
		Scope:   &testutil.Resolver{Values: map[string]string{"name": "Alice"}},
		Environ: noEnv,
		Prompt: func(*config.PromptSpec, string) (string, error) {
			prompted++
			return "from-prompt", nil
		},
	}

	def := config.PromptVar("What's your name?")
	got, err := e.Evaluate(context.Background(), "name", def)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if got != "Alice" {
		t.Errorf("Evaluate = %q, want Alice", got)
	}
	if prompted != 0 {
		t.Error("prompt fired despite an argument value being present")
	}

	e.Scope = &testutil.Resolver{}
	got, err = e.Evaluate(context.Background(), "name", def)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	if got != "from-prompt" || prompted != 1 {
		t.Errorf("Evaluate = %q (prompted %d), want from-prompt once", got, prompted)
	}
}

func TestEvaluateMissingArgumentVariable(t *testing.T) {
	e := &Evaluator{Scope: &testutil.Resolver{}, Environ: noEnv}

	def := config.ArgumentVar(config.NamedBinding("env", "e", "Target environment"))
	_, err := e.Evaluate(context.Background(), "env", def)
	if err == nil {
		t.Fatal("expected an error for an argument variable with no value")
	}
	if !strings.Contains(err.Error(), "--env") {
		t.Errorf("error = %q, want the flag name", err)
	}
}

func TestEvaluateAll(t *testing.T) {
	scope := config.VariableMap{
		"greeting": config.ShorthandLiteralVar("hello"),
		"name":     config.LiteralVar("world").WithBinding(config.ShorthandBinding("name")),
	}
	e := &Evaluator{
		Scope:   &testutil.Resolver{Values: map[string]string{"name": "Alice"}},
		Environ: noEnv,
	}

	values, err := e.EvaluateAll(context.Background(), scope)
	if err != nil {
		t.Fatalf("EvaluateAll returned error: %v", err)
	}
	if values["greeting"] != "hello" {
		t.Errorf("greeting = %q, want hello", values["greeting"])
	}
	if values["name"] != "Alice" {
		t.Errorf("name = %q, want Alice", values["name"])
	}
}

func TestEvaluateAllWrapsErrorsWithTheVariableKey(t *testing.T) {
	scope := config.VariableMap{
		"sha": config.ExecutionVar("git rev-parse HEAD"),
	}
	e := &Evaluator{
		Scope:   &testutil.Resolver{},
		Environ: noEnv,
		Capture: func(context.Context, *config.ExecutionSpec) (string, error) {
			return "", errors.New("boom")
		},
	}

	_, err := e.EvaluateAll(context.Background(), scope)
	if err == nil {
		t.Fatal("expected the capture error to surface")
	}
	if !strings.Contains(err.Error(), `variable "sha"`) {
		t.Errorf("error = %q, want the variable key in the message", err)
	}
}

func TestEnvOverlay(t *testing.T) {
	scope := config.VariableMap{
		"token": config.LiteralVar("sekret").WithEnvVar("API_TOKEN"),
		"name":  config.ShorthandLiteralVar("Alice"),
		"env":   config.LiteralVar("dev").WithEnvVar("DEPLOY_ENV"),
	}
	values := map[string]string{"token": "sekret", "name": "Alice", "env": "prod"}

	overlay := EnvOverlay(scope, values)

	want := []string{"DEPLOY_ENV=prod", "API_TOKEN=sekret"}
	if len(overlay) != len(want) {
		t.Fatalf("overlay = %v, want %v", overlay, want)
	}
	for i := range want {
		if overlay[i] != want[i] {
			t.Errorf("overlay[%d] = %q, want %q", i, overlay[i], want[i])
		}
	}
}
