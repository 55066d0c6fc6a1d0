// Package executor runs a resolved execution plan sequentially, fail-fast.
// It knows nothing about what the external tools do; it only invokes
// structured commands and reacts to their exit status.
package executor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/crank-build/crank/internal/task"
)

// Status classifies the outcome of a run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// TargetResult records one executed target.
type TargetResult struct {
	Name     string
	Duration time.Duration
	Err      error
}

// Result is the outcome of executing a plan. Targets holds every target
// that started, in execution order; on failure the last entry carries the
// error and later plan entries never ran.
type Result struct {
	Status  Status
	Targets []TargetResult
	// Err is the failure that stopped the run, nil on success.
	Err error
}

// Executed returns the names of targets that completed without error.
func (r *Result) Executed() []string {
	var names []string
	for _, tr := range r.Targets {
		if tr.Err == nil {
			names = append(names, tr.Name)
		}
	}
	return names
}

// Executor runs plans strictly sequentially: no target and no command ever
// overlaps another in the same invocation.
type Executor struct {
	runner Runner
	logger *slog.Logger
}

// New creates an executor. A nil runner defaults to a non-echoing
// ProcessRunner; a nil logger discards.
func New(runner Runner, logger *slog.Logger) *Executor {
	if runner == nil {
		runner = NewProcessRunner(false)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Executor{runner: runner, logger: logger}
}

// Execute runs each target in plan, in order, stopping at the first
// failure. Already-completed targets are not rolled back. Cleanup commands
// of the in-flight target always run, interruption included.
func (e *Executor) Execute(ctx context.Context, reg *task.Registry, plan []string) *Result {
	res := &Result{Status: StatusSucceeded}

	for _, name := range plan {
		t, err := reg.Lookup(name)
		if err != nil {
			res.Status = StatusFailed
			res.Err = err
			return res
		}

		e.logger.Debug("executing target", "target", name, "commands", len(t.Commands))
		start := time.Now()
		runErr := e.runTarget(ctx, t)
		res.Targets = append(res.Targets, TargetResult{
			Name:     name,
			Duration: time.Since(start),
			Err:      runErr,
		})

		if runErr != nil {
			if isCancelled(ctx, runErr) {
				res.Status = StatusCancelled
				res.Err = &CancelledError{Target: name}
			} else {
				res.Status = StatusFailed
				res.Err = runErr
			}
			e.logger.Debug("plan aborted", "target", name, "error", runErr)
			return res
		}
	}

	return res
}

// runTarget runs the target's commands sequentially, then its cleanup
// commands unconditionally. A cleanup failure surfaces only when the main
// commands succeeded; it never masks the original error.
func (e *Executor) runTarget(ctx context.Context, t *task.Target) error {
	var firstErr error
	for _, cmd := range t.Commands {
		if err := ctx.Err(); err != nil {
			firstErr = err
			break
		}
		if err := e.runCommand(ctx, t.Name, cmd); err != nil {
			firstErr = err
			break
		}
	}

	for _, cmd := range t.Cleanup {
		// Cleanup outlives cancellation of the run itself.
		if err := e.runCommand(context.WithoutCancel(ctx), t.Name, cmd); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

func (e *Executor) runCommand(ctx context.Context, target string, cmd task.Command) error {
	e.logger.Debug("running command", "target", target, "command", cmd.String())
	res, err := e.runner.Run(ctx, cmd)
	if ctx.Err() != nil {
		// The interrupt, not the command's own outcome, decides the run.
		return ctx.Err()
	}
	if err != nil {
		return &CommandError{Target: target, Command: cmd, ExitStatus: -1, Err: err}
	}
	if !res.Completed {
		return &CommandError{Target: target, Command: cmd, ExitStatus: res.ExitStatus, Signaled: true}
	}
	if res.ExitStatus != 0 {
		return &CommandError{Target: target, Command: cmd, ExitStatus: res.ExitStatus}
	}
	return nil
}

func isCancelled(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, context.Canceled)
}
