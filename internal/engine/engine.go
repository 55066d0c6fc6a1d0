// Package engine ties the registry, dependency graph, and executor together
// into the run orchestration used by the CLI.
package engine

import (
	"context"
	"io"
	"log/slog"

	"github.com/crank-build/crank/internal/dag"
	"github.com/crank-build/crank/internal/executor"
	"github.com/crank-build/crank/internal/task"
)

// Config holds engine construction options.
type Config struct {
	// Registry is the target catalog. Required.
	Registry *task.Registry

	// Runner executes commands (optional; defaults to a real process
	// runner). Tests inject a fake here.
	Runner executor.Runner

	// Logger is the structured logger (optional, discards if nil).
	Logger *slog.Logger
}

// Engine resolves and executes targets against a fixed catalog. The catalog
// is read-only after construction; each invocation produces a fresh plan.
type Engine struct {
	registry *task.Registry
	graph    *dag.Graph
	exec     *executor.Executor
	logger   *slog.Logger
}

// New creates an engine over the given catalog.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		registry: cfg.Registry,
		graph:    dag.New(cfg.Registry),
		exec:     executor.New(cfg.Runner, logger),
		logger:   logger,
	}
}

// Registry returns the catalog the engine was built over.
func (e *Engine) Registry() *task.Registry { return e.registry }

// Graph returns the dependency graph.
func (e *Engine) Graph() *dag.Graph { return e.graph }

// Plan resolves root into its execution order without running anything.
func (e *Engine) Plan(root string) ([]string, error) {
	return e.graph.Resolve(root)
}

// Run resolves root and executes the plan sequentially, fail-fast.
// Resolution errors abort before any command runs. The returned error is
// the run's failure, already recorded in the result when one is returned.
func (e *Engine) Run(ctx context.Context, root string) (*executor.Result, error) {
	plan, err := e.graph.Resolve(root)
	if err != nil {
		e.logger.Error("resolution failed", "target", root, "error", err)
		return nil, err
	}

	e.logger.Info("starting run", "target", root, "plan", plan)
	res := e.exec.Execute(ctx, e.registry, plan)
	switch res.Status {
	case executor.StatusSucceeded:
		e.logger.Info("run completed", "target", root, "targets_run", len(res.Targets))
	case executor.StatusCancelled:
		e.logger.Info("run cancelled", "target", root)
	default:
		e.logger.Error("run failed", "target", root, "error", res.Err)
	}
	return res, res.Err
}
