package commands

import (
	"fmt"
	"strings"

	"github.com/crank-build/crank/internal/dag"
	"github.com/spf13/cobra"
)

// NewGraphCommand creates the graph command.
func NewGraphCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "graph [target]",
		Short: "Show the dependency graph or a target's execution plan",
		Long: `Without an argument, print every target's declared dependencies.
With a target name, resolve it and print the execution plan in order:
each dependency exactly once, before its dependents. Nothing executes.`,
		Example: `  # Show all dependency edges
  crank graph

  # Show the plan for the full verification pipeline
  crank graph ci-check`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return graphPlan(cmd, args[0])
			}
			return graphEdges(cmd)
		},
	}
}

// graphPlan prints the resolved execution order for a target.
func graphPlan(cmd *cobra.Command, name string) error {
	st := StateFrom(cmd.Context())
	g := dag.New(st.Registry)

	plan, err := g.Resolve(name)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, st.Styles.Title.Render(fmt.Sprintf("Execution plan for %s:", name)))
	for i, step := range plan {
		fmt.Fprintf(out, "%3d. %s\n", i+1, st.Styles.Target.Render(step))
	}
	return nil
}

// graphEdges prints the declared dependencies of every target.
func graphEdges(cmd *cobra.Command) error {
	st := StateFrom(cmd.Context())
	out := cmd.OutOrStdout()

	for _, t := range st.Registry.All() {
		if len(t.Deps) == 0 {
			fmt.Fprintln(out, st.Styles.Target.Render(t.Name))
			continue
		}
		fmt.Fprintf(out, "%s %s %s\n",
			st.Styles.Target.Render(t.Name),
			st.Styles.Muted.Render("<-"),
			strings.Join(t.Deps, ", "))
	}
	return nil
}
