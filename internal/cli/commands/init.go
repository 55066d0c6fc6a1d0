package commands

import (
	"fmt"
	"os"

	"github.com/crank-build/crank/internal/config"
	"github.com/crank-build/crank/internal/task"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const initHeader = `# crank pipeline file.
# Targets declared here replace the built-in catalog entirely.
`

// InitOptions holds options for the init command.
type InitOptions struct {
	Force bool
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	opts := &InitOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter crank.yaml with the built-in catalog",
		Long: `Write a crank.yaml pipeline file pre-populated with the built-in
target catalog, ready to edit. Refuses to overwrite an existing file
unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite an existing crank.yaml")

	return cmd
}

func runInit(cmd *cobra.Command, opts *InitOptions) error {
	if !opts.Force {
		if _, err := os.Stat(config.FileName); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
		}
	}

	doc := struct {
		Pipeline string              `yaml:"pipeline"`
		Targets  []config.TargetSpec `yaml:"targets"`
	}{
		Pipeline: "default",
		Targets:  config.SpecsFromRegistry(task.Builtin()),
	}

	body, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to render pipeline file: %w", err)
	}

	if err := os.WriteFile(config.FileName, append([]byte(initHeader), body...), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", config.FileName, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s with %d targets\n", config.FileName, len(doc.Targets))
	return nil
}
