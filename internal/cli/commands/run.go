package commands

import (
	"fmt"
	"time"

	"github.com/crank-build/crank/internal/engine"
	"github.com/crank-build/crank/internal/executor"
	"github.com/crank-build/crank/internal/task"
	"github.com/spf13/cobra"
)

// TargetGroupID groups the generated target commands in help output.
const TargetGroupID = "targets"

// NewTargetCommand creates the subcommand that runs one registered target.
// The name is resolved against the catalog loaded at run time, so the
// command stays correct when a pipeline file overrides the built-ins.
func NewTargetCommand(t *task.Target) *cobra.Command {
	return &cobra.Command{
		Use:     t.Name,
		Short:   t.Desc,
		GroupID: TargetGroupID,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunTarget(cmd, t.Name)
		},
	}
}

// RunTarget resolves and executes the named target, printing a summary.
// The returned error, if any, is the run's failure; the caller maps it to
// the process exit status.
func RunTarget(cmd *cobra.Command, name string) error {
	st := StateFrom(cmd.Context())

	eng := engine.New(engine.Config{
		Registry: st.Registry,
		Runner:   executor.NewProcessRunner(true),
		Logger:   st.Logger,
	})

	start := time.Now()
	res, err := eng.Run(cmd.Context(), name)
	if err != nil {
		return err
	}

	styles := st.Styles
	out := cmd.OutOrStdout()
	for _, tr := range res.Targets {
		fmt.Fprintf(out, "%s %s %s\n",
			styles.Success.Render("✓"),
			styles.Target.Render(tr.Name),
			styles.Muted.Render(tr.Duration.Round(time.Millisecond).String()))
	}
	fmt.Fprintf(out, "%s\n", styles.Success.Render(
		fmt.Sprintf("ok: ran %d target(s) in %s", len(res.Targets), time.Since(start).Round(time.Millisecond))))
	return nil
}
