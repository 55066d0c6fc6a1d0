// Command crank is a declarative, dependency-ordered task runner.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/crank-build/crank/internal/cli"
)

func main() {
	// An interrupt propagates to the running child command via the
	// executor; the plan then stops and reports a cancelled outcome.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}
