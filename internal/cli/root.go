// Package cli provides the command-line interface for crank.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/crank-build/crank/internal/cli/commands"
	"github.com/crank-build/crank/internal/cli/output"
	"github.com/crank-build/crank/internal/config"
	"github.com/crank-build/crank/internal/dag"
	"github.com/crank-build/crank/internal/executor"
	"github.com/crank-build/crank/internal/task"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// Exit codes. Command failures propagate the child's own exit status
// instead.
const (
	exitOK          = 0
	exitFailure     = 1
	exitResolution  = 2
	exitInterrupted = 130
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var (
		cfgFile string
		verbose bool
		noColor bool
	)

	rootCmd := &cobra.Command{
		Use:   "crank",
		Short: "crank - dependency-ordered task runner",
		Long: `crank runs a declarative catalog of named targets (format, lint,
type-check, security, test, ...) in dependency order: invoking a composite
target like ci-check runs each prerequisite exactly once, fail-fast.

Targets come from the built-in catalog, or from a crank.yaml pipeline file
in the current directory.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "__complete", "version", "init":
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			reg, err := cfg.BuildRegistry()
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			if cfg.Verbose {
				logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				}))
			}

			st := &commands.State{
				Cfg:      cfg,
				Registry: reg,
				Logger:   logger,
				Styles:   output.NewStyles(output.ColorEnabled(cfg.NoColor)),
			}
			cmd.SetContext(commands.WithState(cmd.Context(), st))
			return nil
		},
		// No argument means the help pseudo-target: list the catalog
		// without executing anything. A positional argument that did not
		// match a generated subcommand is looked up against the catalog
		// loaded at run time, so targets declared only in a pipeline file
		// named by --config still dispatch.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return printCatalog(cmd)
			}
			name := args[0]
			st := commands.StateFrom(cmd.Context())
			if !st.Registry.Has(name) {
				return &task.UnknownTargetError{Name: name}
			}
			return commands.RunTarget(cmd, name)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf("crank v{{.Version}} (%s)\n", GitCommit))

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "pipeline file (default: ./crank.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable styled output")

	rootCmd.AddGroup(&cobra.Group{ID: commands.TargetGroupID, Title: "Targets:"})
	for _, t := range startupCatalog(cfgFile).All() {
		rootCmd.AddCommand(commands.NewTargetCommand(t))
	}

	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewGraphCommand())
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewWatchCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version))

	return rootCmd
}

// startupCatalog loads the catalog visible at command-construction time so
// that one subcommand per target can be registered. Flags are not parsed
// yet, so only the --config value is honored (scanned from the raw
// arguments); load failures fall back to the built-in catalog and resurface
// with full detail once flags are parsed.
func startupCatalog(cfgFile string) *task.Registry {
	if cfgFile == "" {
		cfgFile = configFlagValue(os.Args[1:])
	}
	cfg, err := config.Load(cfgFile, nil)
	if err != nil {
		return task.Builtin()
	}
	reg, err := cfg.BuildRegistry()
	if err != nil {
		return task.Builtin()
	}
	return reg
}

// configFlagValue extracts --config from raw arguments before flag parsing.
func configFlagValue(args []string) string {
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if v, ok := strings.CutPrefix(arg, "--config="); ok {
			return v
		}
	}
	return ""
}

// printCatalog lists every target's name and description without executing
// anything: a pure read of the registry.
func printCatalog(cmd *cobra.Command) error {
	st := commands.StateFrom(cmd.Context())
	out := cmd.OutOrStdout()

	title := "Targets:"
	if st.Cfg.Pipeline != "" {
		title = fmt.Sprintf("Targets (%s):", st.Cfg.Pipeline)
	}
	fmt.Fprintln(out, st.Styles.Title.Render(title))

	width := 0
	for _, name := range st.Registry.Names() {
		if len(name) > width {
			width = len(name)
		}
	}
	for _, t := range st.Registry.All() {
		fmt.Fprintf(out, "  %s  %s\n",
			st.Styles.Target.Render(fmt.Sprintf("%-*s", width, t.Name)),
			t.Desc)
	}
	fmt.Fprintf(out, "\nRun %s to execute a target.\n", st.Styles.Muted.Render("crank <target>"))
	return nil
}

// Execute runs the root command and maps its outcome to a process exit
// status: 0 on success, the failing command's exit status on execution
// failure, a distinguished status for resolution-time errors, and 130 on
// interrupt.
func Execute(ctx context.Context) int {
	rootCmd := NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return exitCode(err)
}

func exitCode(err error) int {
	var cancelled *executor.CancelledError
	if errors.As(err, &cancelled) || errors.Is(err, context.Canceled) {
		return exitInterrupted
	}

	var cmdErr *executor.CommandError
	if errors.As(err, &cmdErr) {
		if cmdErr.ExitStatus > 0 {
			return cmdErr.ExitStatus
		}
		return exitFailure
	}

	var unknown *task.UnknownTargetError
	var cycle *dag.CycleError
	var dup *task.DuplicateTargetError
	if errors.As(err, &unknown) || errors.As(err, &cycle) || errors.As(err, &dup) {
		return exitResolution
	}

	return exitFailure
}
