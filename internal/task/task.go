// Package task defines the target catalog for the pipeline: named units of
// work, the structured commands they run, and the registry that holds them.
package task

import (
	"sort"
	"strings"
)

// Command is a structured command descriptor. Commands are never passed
// through a shell; the executable and its arguments are explicit so that
// commands can be tested by substituting a fake process runner.
type Command struct {
	// Exec is the program to invoke.
	Exec string
	// Args are the arguments passed to the program, in order.
	Args []string
	// Dir is the working directory. Empty means inherit the caller's.
	Dir string
	// Env holds per-command environment overrides, layered over the
	// inherited process environment.
	Env map[string]string
}

// String renders the command as a shell-like one-liner for diagnostics.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Exec)
	parts = append(parts, c.Args...)
	return strings.Join(parts, " ")
}

// EnvList returns the Env overrides as sorted KEY=VALUE pairs.
func (c Command) EnvList() []string {
	if len(c.Env) == 0 {
		return nil
	}
	pairs := make([]string, 0, len(c.Env))
	for k, v := range c.Env {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return pairs
}

// Target is a named unit of work. Dependencies run, in declared order,
// before the target's own commands. A target with no commands is a pure
// aggregator.
type Target struct {
	// Name uniquely identifies the target. Non-empty, no whitespace.
	Name string
	// Deps lists the names of targets that must complete first.
	Deps []string
	// Commands run sequentially when the target executes.
	Commands []Command
	// Cleanup commands always run after Commands, even when a command
	// failed or the run was interrupted. Teardown of companion services
	// belongs here rather than in Commands.
	Cleanup []Command
	// Desc is the help text shown in the catalog listing.
	Desc string
	// Phony marks a target with no tracked output artifact; every
	// invocation re-runs its commands. All built-in targets are phony.
	Phony bool
}

// ValidName reports whether s is usable as a target name.
func ValidName(s string) bool {
	return s != "" && !strings.ContainsAny(s, " \t\n\r")
}
