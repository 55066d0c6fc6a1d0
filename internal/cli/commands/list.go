package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/crank-build/crank/internal/config"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// ListOptions holds options for the list command.
type ListOptions struct {
	JSON bool
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every target with its dependencies and commands",
		Long: `List the full target catalog: name, dependencies, command count,
and description. Listing is a pure read of the catalog; nothing executes.`,
		Example: `  # List the catalog as a table
  crank list

  # List the catalog as JSON
  crank list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output the catalog as JSON")

	return cmd
}

func runList(cmd *cobra.Command, opts *ListOptions) error {
	st := StateFrom(cmd.Context())

	if opts.JSON {
		specs := config.SpecsFromRegistry(st.Registry)
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(specs)
	}

	if st.Cfg.Pipeline != "" {
		fmt.Fprintln(cmd.OutOrStdout(), st.Styles.Title.Render("Pipeline: "+st.Cfg.Pipeline))
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.AppendHeader(table.Row{"Target", "Depends On", "Commands", "Description"})
	for _, t := range st.Registry.All() {
		tw.AppendRow(table.Row{
			t.Name,
			strings.Join(t.Deps, ", "),
			len(t.Commands) + len(t.Cleanup),
			t.Desc,
		})
	}
	tw.SetStyle(table.StyleLight)
	tw.Render()
	return nil
}
