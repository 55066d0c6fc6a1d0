// Package commands tests for CLI command creation.
package commands

import (
	"context"
	"testing"

	"github.com/crank-build/crank/internal/task"
	"github.com/stretchr/testify/assert"
)

func TestNewTargetCommand(t *testing.T) {
	cmd := NewTargetCommand(&task.Target{Name: "lint", Desc: "Run linter checks"})

	assert.Equal(t, "lint", cmd.Use)
	assert.Equal(t, "Run linter checks", cmd.Short)
	assert.Equal(t, TargetGroupID, cmd.GroupID, "target commands should be grouped in help output")
	assert.NotNil(t, cmd.RunE)
}

func TestNewListCommand(t *testing.T) {
	cmd := NewListCommand()

	assert.Equal(t, "list", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("json"), "flag json should exist")
}

func TestNewGraphCommand(t *testing.T) {
	cmd := NewGraphCommand()

	assert.Equal(t, "graph [target]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")
}

func TestNewInitCommand(t *testing.T) {
	cmd := NewInitCommand()

	assert.Equal(t, "init", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("force"), "flag force should exist")
}

func TestNewWatchCommand(t *testing.T) {
	cmd := NewWatchCommand()

	assert.Equal(t, "watch <target>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("path"), "flag path should exist")
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3")

	assert.Equal(t, "version", cmd.Use)
	assert.NotNil(t, cmd.Run)
}

func TestStateFrom_Fallback(t *testing.T) {
	st := StateFrom(context.Background())

	assert.NotNil(t, st.Registry)
	assert.True(t, st.Registry.Has("ci-check"), "fallback state carries the built-in catalog")
	assert.NotNil(t, st.Logger)
}
