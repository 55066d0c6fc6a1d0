package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/crank-build/crank/internal/task"
)

// CommandResult is the outcome of one child process: its exit status and
// whether it completed normally (as opposed to dying on a signal).
type CommandResult struct {
	ExitStatus int
	Completed  bool
}

// Runner executes a single command and reports its outcome. The error
// return is reserved for failures to run at all (program not found,
// context cancelled); a non-zero exit is a result, not an error. Tests
// substitute a fake implementation; production code uses ProcessRunner.
type Runner interface {
	Run(ctx context.Context, cmd task.Command) (CommandResult, error)
}

// interruptGrace is how long a child gets to exit after SIGINT before it is
// killed.
const interruptGrace = 5 * time.Second

// ProcessRunner runs commands as child processes. Streams pass through
// unmodified: the external tools' own output is the user-visible contract.
type ProcessRunner struct {
	// Stdout and Stderr default to the process streams.
	Stdout io.Writer
	Stderr io.Writer
	// Stdin defaults to the process stdin so interactive tools keep working.
	Stdin io.Reader
	// Echo prints each command line before running it, make-style.
	Echo bool
}

// NewProcessRunner returns a runner wired to the current process streams.
func NewProcessRunner(echo bool) *ProcessRunner {
	return &ProcessRunner{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stdin:  os.Stdin,
		Echo:   echo,
	}
}

// Run starts the command and blocks until it exits. The child inherits the
// current environment plus any per-command overrides, and the current
// working directory unless the command names one. On context cancellation
// the child receives an interrupt signal and, after a grace period, is
// killed.
func (r *ProcessRunner) Run(ctx context.Context, cmd task.Command) (CommandResult, error) {
	if cmd.Exec == "" {
		return CommandResult{}, fmt.Errorf("empty command")
	}

	c := exec.CommandContext(ctx, cmd.Exec, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = append(os.Environ(), cmd.EnvList()...)
	c.Stdout = r.Stdout
	c.Stderr = r.Stderr
	c.Stdin = r.Stdin

	// Forward cancellation as SIGINT so the child can clean up; WaitDelay
	// escalates to SIGKILL if it does not.
	c.Cancel = func() error {
		return c.Process.Signal(os.Interrupt)
	}
	c.WaitDelay = interruptGrace

	if r.Echo && r.Stdout != nil {
		fmt.Fprintln(r.Stdout, cmd.String())
	}

	err := c.Run()
	if err == nil {
		return CommandResult{ExitStatus: 0, Completed: true}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		// A negative code means the child was killed by a signal.
		return CommandResult{ExitStatus: code, Completed: code >= 0}, nil
	}
	return CommandResult{}, err
}
