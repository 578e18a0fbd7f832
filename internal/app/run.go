package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// appEnv is the per-invocation state shared by every command. It is filled
// in by the root command's PersistentPreRunE.
type appEnv struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// tool and picker are nil in production and replaced in tests.
	tool        PromptTool
	picker      Picker
	interactive func() bool

	cfg    Config
	logger *log.Logger
	ctrl   *Controller
}

// Run executes the CLI and returns a process exit code.
func Run() int {
	return execute(os.Args[1:], &appEnv{
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		interactive: isInteractive,
	})
}

func execute(args []string, rt *appEnv) int {
	if rt.interactive == nil {
		rt.interactive = func() bool { return false }
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd(rt)
	root.SetArgs(args)
	root.SetIn(rt.stdin)
	root.SetOut(rt.stdout)
	root.SetErr(rt.stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(rt.stderr, "Error: %v\n", err)
		var ue usageError
		if errors.As(err, &ue) {
			return 2
		}
		return 1
	}
	return 0
}

func newRootCmd(rt *appEnv) *cobra.Command {
	var (
		flagVerbose     bool
		flagNoColor     bool
		flagShell       string
		flagPersonalDir string
		flagBuiltinDir  string
		flagPageSize    int
	)

	rootCmd := &cobra.Command{
		Use:           appName,
		Short:         "Pick, apply and persist Oh My Posh prompt themes",
		Long:          "poshtheme lists your personal and built-in Oh My Posh themes, lets you pick one from a paginated menu, remembers it, and regenerates the shell init script your profile sources.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			baseCfg, loadErr := loadConfig()
			baseCfg, problems := sanitizeConfig(baseCfg)
			cfg, err := cfgFromFlags(baseCfg, flagPersonalDir, flagBuiltinDir, flagShell, flagPageSize, flagNoColor)
			if err != nil {
				return err
			}
			rt.cfg = cfg
			rt.logger = newLogger(rt.stderr, cfg.LogLevel, flagVerbose)
			if loadErr != nil {
				rt.logger.Warn("Ignoring config file", "err", loadErr)
			}
			for _, p := range problems {
				rt.logger.Warn("Invalid config value", "err", p)
			}

			tool := rt.tool
			if tool == nil {
				tool = newExecTool(cfg.Tool)
			}
			picker := rt.picker
			if picker == nil {
				picker = newTUIPicker(cfg, rt.stdin, rt.stderr)
			}
			rt.ctrl = NewController(cfg, tool, picker, rt.logger)
			return nil
		},
		Args: maxArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation: menu on a terminal, table otherwise.
			if rt.interactive() {
				return runSelect(cmd.Context(), rt, "", FilterUnset, false)
			}
			return runList(rt, FilterAll, false, false)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug diagnostics to stderr")
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable colors in menus and tables")
	pf.StringVar(&flagShell, "shell", "", "Shell to render the init script for (default from config or $SHELL)")
	pf.StringVar(&flagPersonalDir, "personal-dir", "", "Override the personal themes directory")
	pf.StringVar(&flagBuiltinDir, "builtin-dir", "", "Override the built-in themes directory")
	pf.IntVar(&flagPageSize, "page-size", 0, "Themes per menu page (default from config)")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err: err}
	})

	rootCmd.AddCommand(newListCmd(rt))
	rootCmd.AddCommand(newSelectCmd(rt))
	rootCmd.AddCommand(newCurrentCmd(rt))
	rootCmd.AddCommand(newClearCmd(rt))
	rootCmd.AddCommand(newShellInitCmd(rt))
	rootCmd.AddCommand(newWatchCmd(rt))
	rootCmd.AddCommand(newConfigCmd(rt))
	rootCmd.AddCommand(newDoctorCmd(rt))
	rootCmd.SetHelpCommand(newHelpCmd())
	return rootCmd
}

// maxArgs is cobra.MaximumNArgs reported as a usage error.
func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return usageErrorf("%s accepts at most %d arg(s), received %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}

// filterFromFlags maps the mutually exclusive source flags to a Filter.
func filterFromFlags(personal, builtin, all bool, fallback Filter) (Filter, error) {
	n := 0
	f := fallback
	if personal {
		n++
		f = FilterPersonal
	}
	if builtin {
		n++
		f = FilterBuiltin
	}
	if all {
		n++
		f = FilterAll
	}
	if n > 1 {
		return "", usageErrorf("--personal, --builtin and --all are mutually exclusive")
	}
	return f, nil
}
