package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/plzcli/plz/internal/commands"
	"github.com/plzcli/plz/internal/config"
	"github.com/plzcli/plz/internal/platform"
	"github.com/plzcli/plz/internal/settings"
	"github.com/plzcli/plz/internal/shell"
	"github.com/plzcli/plz/internal/ui"
	"github.com/plzcli/plz/internal/variables"
)

// globalOptions are plz-level controls read from the command line before the
// grammar is compiled. They must appear before the first subcommand; later
// occurrences belong to the user's own flags.
type globalOptions struct {
	ConfigPath string
	Verbose    bool
}

// Execute compiles the command tree from the discovered document, runs the
// invocation, and returns the process exit code.
func Execute() int {
	argv := os.Args[1:]
	opts := scanGlobalFlags(argv)

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "plz"})
	if opts.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, argv, opts, logger)
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			ui.Error(exitErr.Error())
		}
		return exitErr.Code
	}
	ui.Error(err.Error())
	return 1
}

func run(ctx context.Context, argv []string, opts globalOptions, logger *log.Logger) error {
	setts := loadSettings(logger)
	ui.ConfigureTheme(setts.UI.Accent)
	ui.ConfigureMarkdownCodeTheme(setts.UI.CodeTheme)

	cfg, docPath, err := loadDocument(opts, logger)
	if err != nil {
		return err
	}

	a := &app{
		logger:   logger,
		settings: setts,
		cfg:      cfg,
		docPath:  docPath,
		runner:   shell.New(),
		prompter: variables.NewTerminalPrompter(),
		argv:     argv,
	}

	root, err := commands.CompileRoot(cfg, platform.OSProvider{}, versionString())
	if err != nil {
		return err
	}
	a.root = root

	if root.Command.Short == "" {
		root.Command.Short = "A configuration-driven command runner"
	}
	root.Command.SilenceErrors = true
	root.Command.SilenceUsage = true

	a.wire(root)
	a.attachBuiltins(root)
	declareGlobalFlags(root.Command)

	root.Command.SetArgs(argv)
	return root.Command.ExecuteContext(ctx)
}

// loadSettings reads the global settings file. Settings are advisory, so an
// unreadable file degrades to defaults instead of failing the run.
func loadSettings(logger *log.Logger) *settings.Settings {
	setts, err := settings.Load()
	if err != nil {
		logger.Warn("ignoring unreadable settings", "error", err)
		return &settings.Settings{}
	}
	return setts
}

// loadDocument finds and parses the plz document. A missing document is not
// an error; the built-in commands still work without one.
func loadDocument(opts globalOptions, logger *log.Logger) (*config.Config, string, error) {
	if opts.ConfigPath != "" {
		cfg, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, "", err
		}
		return cfg, opts.ConfigPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, "", err
	}

	path, err := config.Discover(cwd)
	if errors.Is(err, config.ErrNotFound) {
		logger.Debug("no plz document found", "dir", cwd)
		return &config.Config{}, "", nil
	}
	if err != nil {
		return nil, "", err
	}

	logger.Debug("using document", "path", path)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// attachBuiltins adds the plz-provided commands wherever the document has
// not claimed their names.
func (a *app) attachBuiltins(root *commands.Node) {
	builtins := []*cobra.Command{
		newVersionCmd(),
		newInitCmd(),
		newDocsCmd(),
		a.newHistoryCmd(),
	}
	for _, cmd := range builtins {
		if _, taken := root.Children[cmd.Name()]; taken {
			a.logger.Debug("builtin name taken by the document", "name", cmd.Name())
			continue
		}
		root.Command.AddCommand(cmd)
	}
}

// declareGlobalFlags registers --config and --verbose so the parser accepts
// them anywhere; their values are read by scanGlobalFlags before parsing.
func declareGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("config", "", "path to the plz document (default: discovered from the working directory)")
	flags.Bool("verbose", false, "enable debug logging")
}

func scanGlobalFlags(argv []string) globalOptions {
	var opts globalOptions
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "--":
			return opts
		case arg == "--verbose":
			opts.Verbose = true
		case arg == "--config" && i+1 < len(argv):
			opts.ConfigPath = argv[i+1]
			i++
		case strings.HasPrefix(arg, "--config="):
			opts.ConfigPath = strings.TrimPrefix(arg, "--config=")
		case !strings.HasPrefix(arg, "-"):
			return opts
		}
	}
	return opts
}
