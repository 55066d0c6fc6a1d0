package executor

import (
	"context"
	"fmt"

	"github.com/crank-build/crank/internal/task"
)

// CommandError reports a command that exited non-zero, terminated
// abnormally, or failed to start.
type CommandError struct {
	// Target is the name of the target the command belongs to.
	Target string
	// Command is the failing command.
	Command task.Command
	// ExitStatus is the child's exit status. It is negative when the child
	// never produced one (killed by a signal, or failed to start).
	ExitStatus int
	// Signaled is true when the child was terminated abnormally instead of
	// exiting.
	Signaled bool
	// Err is the underlying error from the runner.
	Err error
}

func (e *CommandError) Error() string {
	if e.Signaled {
		return fmt.Sprintf("target %q: command %q terminated abnormally", e.Target, e.Command.String())
	}
	if e.ExitStatus < 0 {
		return fmt.Sprintf("target %q: command %q failed: %v", e.Target, e.Command.String(), e.Err)
	}
	return fmt.Sprintf("target %q: command %q exited with status %d", e.Target, e.Command.String(), e.ExitStatus)
}

func (e *CommandError) Unwrap() error { return e.Err }

// CancelledError reports a run stopped by an external interrupt. It is a
// non-success outcome distinct from a command failure.
type CancelledError struct {
	// Target is the target that was running when the interrupt arrived.
	Target string
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("run cancelled while executing target %q", e.Target)
}

func (e *CancelledError) Unwrap() error { return context.Canceled }
