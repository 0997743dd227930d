package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/plzcli/plz/internal/args"
	"github.com/plzcli/plz/internal/commands"
	"github.com/plzcli/plz/internal/config"
	"github.com/plzcli/plz/internal/history"
	"github.com/plzcli/plz/internal/resolver"
	"github.com/plzcli/plz/internal/settings"
	"github.com/plzcli/plz/internal/shell"
	"github.com/plzcli/plz/internal/shellquote"
	"github.com/plzcli/plz/internal/ui"
	"github.com/plzcli/plz/internal/variables"
)

// app carries the state shared by every run function wired onto the
// compiled tree.
type app struct {
	logger   *log.Logger
	settings *settings.Settings
	cfg      *config.Config
	docPath  string
	root     *commands.Node
	runner   *shell.Runner
	prompter *variables.TerminalPrompter
	argv     []string
}

// wire installs run functions on every compiled node. Grouping nodes get
// the subcommand-required behavior; action nodes get the resolve, evaluate,
// execute pipeline.
func (a *app) wire(n *commands.Node) {
	if n.RequiresSubcommand {
		n.Command.RunE = a.requireSubcommand(n)
	} else {
		n.Command.RunE = a.runNode(n)
	}
	for _, child := range n.Children {
		a.wire(child)
	}
}

func (a *app) requireSubcommand(n *commands.Node) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		_ = cmd.Help()
		if n == a.root && a.docPath == "" {
			fmt.Fprintln(os.Stderr, ui.Hint("No plz.yaml found. Run 'plz init' to create one."))
		}
		return &ExitError{Code: 2}
	}
}

func (a *app) runNode(n *commands.Node) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, argv []string) error {
		positional := argv
		if n.Passthrough() {
			trailing, help, err := n.PassthroughTokens(argv)
			if err != nil {
				return err
			}
			if help {
				return cmd.Help()
			}
			positional = trailing
		}

		inv, err := a.root.InvocationFor(cmd, positional)
		if err != nil {
			return err
		}

		res, err := resolver.Resolve(inv, a.root, a.cfg.Commands, a.cfg.Variables)
		if err != nil {
			return err
		}
		if res == nil {
			return fmt.Errorf("no command resolved for %q", cmd.Name())
		}
		return a.execute(cmd.Context(), res)
	}
}

// execute evaluates the resolved command's scope and runs its action.
func (a *app) execute(ctx context.Context, res *resolver.Resolution) error {
	eval := variables.NewEvaluator(res.Scope, a.runner.Capture, a.prompter.Prompt)
	values, err := eval.EvaluateAll(ctx, res.Variables)
	if err != nil {
		return err
	}

	if a.cfg.Options.PrintVariables {
		printVariables(values)
	}

	spec, err := a.actionSpec(res, values)
	if err != nil {
		return err
	}

	if a.cfg.Options.PrintCommands {
		fmt.Fprintln(os.Stderr, ui.Hint("$ ")+ui.CommandName(spec.Command))
	}

	a.runner.Env = append(os.Environ(), variables.EnvOverlay(res.Variables, values)...)

	started := time.Now()
	code, err := a.runner.Run(ctx, spec)
	a.record(code, time.Since(started))
	if err != nil {
		return err
	}
	if code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}

// actionSpec renders the resolved command's action into a runnable
// execution. Alias actions get the captured pass-through tokens appended,
// quoted so the target's shell sees them verbatim.
func (a *app) actionSpec(res *resolver.Resolution, values map[string]string) (*config.ExecutionSpec, error) {
	action := res.Command.Action
	if action == nil {
		return nil, fmt.Errorf("command has no action to run")
	}

	switch action.Kind {
	case config.ActionSingleStep:
		command, err := variables.Interpolate(action.Exec.Command, values)
		if err != nil {
			return nil, err
		}
		return &config.ExecutionSpec{Command: command, Shell: a.shellFor(action.Exec)}, nil

	case config.ActionAlias:
		target, err := variables.Interpolate(action.Alias, values)
		if err != nil {
			return nil, err
		}
		command := target
		if tokens, ok := res.Scope.GetMany(args.AliasArgsName); ok && len(tokens) > 0 {
			command += " " + shellquote.Join(tokens)
		}
		return &config.ExecutionSpec{Command: command, Shell: a.settings.Shell}, nil
	}
	return nil, fmt.Errorf("unhandled action kind %d", action.Kind)
}

// shellFor picks the interpreter for an execution: the action's own shell
// wins over the settings-wide one; empty means the embedded interpreter.
func (a *app) shellFor(spec *config.ExecutionSpec) string {
	if spec.Shell != "" {
		return spec.Shell
	}
	return a.settings.Shell
}

// record stores the finished invocation in the history database. Recording
// is best-effort; failures are logged and never affect the run.
func (a *app) record(exitCode int, duration time.Duration) {
	if a.settings.History.Disabled {
		return
	}
	store, err := a.openHistory()
	if err != nil {
		a.logger.Debug("history unavailable", "error", err)
		return
	}
	defer store.Close()

	command := strings.Join(a.argv, " ")
	if err := store.Record(command, exitCode, duration); err != nil {
		a.logger.Debug("failed to record invocation", "error", err)
	}
}

func (a *app) openHistory() (*history.Store, error) {
	path := a.settings.History.Path
	if path == "" {
		var err error
		path, err = history.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return history.Open(path)
}

func printVariables(values map[string]string) {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintln(os.Stderr, ui.Hint(key+" = "+values[key]))
	}
}
