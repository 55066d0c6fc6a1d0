// Package commands implements the crank subcommands: the generated
// per-target run commands plus list, graph, init, watch, and version.
package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/crank-build/crank/internal/cli/output"
	"github.com/crank-build/crank/internal/config"
	"github.com/crank-build/crank/internal/task"
)

// State carries the loaded configuration, catalog, and logger from the root
// command to subcommands via context.
type State struct {
	Cfg      *config.Config
	Registry *task.Registry
	Logger   *slog.Logger
	Styles   output.Styles
}

type stateKey struct{}

// WithState stores the state in the context.
func WithState(ctx context.Context, st *State) context.Context {
	return context.WithValue(ctx, stateKey{}, st)
}

// StateFrom retrieves the state from the context, falling back to the
// built-in catalog with a discard logger.
func StateFrom(ctx context.Context) *State {
	if st, ok := ctx.Value(stateKey{}).(*State); ok {
		return st
	}
	return &State{
		Cfg:      &config.Config{},
		Registry: task.Builtin(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Styles:   output.NewStyles(false),
	}
}
