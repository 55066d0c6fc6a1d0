// Package config loads crank's configuration and the optional crank.yaml
// pipeline file that replaces the built-in target catalog.
package config

import (
	"fmt"

	"github.com/crank-build/crank/internal/task"
)

// Config is the resolved configuration after merging defaults, the pipeline
// file, environment variables, and CLI flags.
type Config struct {
	// Pipeline is an optional project label shown in listings.
	Pipeline string `koanf:"pipeline" yaml:"pipeline,omitempty"`

	// Verbose enables debug logging to stderr.
	Verbose bool `koanf:"verbose" yaml:"verbose,omitempty"`

	// NoColor disables styled output.
	NoColor bool `koanf:"no_color" yaml:"no_color,omitempty"`

	// Targets replaces the built-in catalog when non-empty.
	Targets []TargetSpec `koanf:"targets" yaml:"targets,omitempty"`
}

// TargetSpec is the pipeline-file form of a target.
type TargetSpec struct {
	Name     string        `koanf:"name" yaml:"name"`
	Desc     string        `koanf:"desc" yaml:"desc,omitempty"`
	Deps     []string      `koanf:"deps" yaml:"deps,omitempty"`
	Commands []CommandSpec `koanf:"commands" yaml:"commands,omitempty"`
	Cleanup  []CommandSpec `koanf:"cleanup" yaml:"cleanup,omitempty"`
}

// CommandSpec is the pipeline-file form of a command.
type CommandSpec struct {
	Exec string            `koanf:"exec" yaml:"exec"`
	Args []string          `koanf:"args" yaml:"args,omitempty"`
	Dir  string            `koanf:"dir" yaml:"dir,omitempty"`
	Env  map[string]string `koanf:"env" yaml:"env,omitempty"`
}

// BuildRegistry turns the configuration into a target registry. With no
// targets declared it returns the built-in catalog. Duplicate names and
// malformed targets fail loading; dangling dependency references do not,
// they are caught at resolution time.
func (c *Config) BuildRegistry() (*task.Registry, error) {
	if len(c.Targets) == 0 {
		return task.Builtin(), nil
	}

	reg := task.NewRegistry()
	for i, spec := range c.Targets {
		t, err := spec.toTarget()
		if err != nil {
			return nil, fmt.Errorf("targets[%d]: %w", i, err)
		}
		if err := reg.Register(t); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func (s TargetSpec) toTarget() (*task.Target, error) {
	if !task.ValidName(s.Name) {
		return nil, fmt.Errorf("invalid target name %q", s.Name)
	}
	commands, err := toCommands(s.Name, s.Commands)
	if err != nil {
		return nil, err
	}
	cleanup, err := toCommands(s.Name, s.Cleanup)
	if err != nil {
		return nil, err
	}
	return &task.Target{
		Name:     s.Name,
		Deps:     s.Deps,
		Commands: commands,
		Cleanup:  cleanup,
		Desc:     s.Desc,
		Phony:    true,
	}, nil
}

func toCommands(target string, specs []CommandSpec) ([]task.Command, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	commands := make([]task.Command, 0, len(specs))
	for i, spec := range specs {
		if spec.Exec == "" {
			return nil, fmt.Errorf("target %q: command %d: exec is required", target, i)
		}
		commands = append(commands, task.Command{
			Exec: spec.Exec,
			Args: spec.Args,
			Dir:  spec.Dir,
			Env:  spec.Env,
		})
	}
	return commands, nil
}

// SpecsFromRegistry converts a registry back into pipeline-file specs, in
// declaration order. Used by the init scaffold.
func SpecsFromRegistry(reg *task.Registry) []TargetSpec {
	specs := make([]TargetSpec, 0, reg.Len())
	for _, t := range reg.All() {
		specs = append(specs, TargetSpec{
			Name:     t.Name,
			Desc:     t.Desc,
			Deps:     t.Deps,
			Commands: fromCommands(t.Commands),
			Cleanup:  fromCommands(t.Cleanup),
		})
	}
	return specs
}

func fromCommands(commands []task.Command) []CommandSpec {
	if len(commands) == 0 {
		return nil
	}
	specs := make([]CommandSpec, 0, len(commands))
	for _, c := range commands {
		specs = append(specs, CommandSpec{Exec: c.Exec, Args: c.Args, Dir: c.Dir, Env: c.Env})
	}
	return specs
}
