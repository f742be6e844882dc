// Package app wires mdsum process execution.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"mdsum/internal/cli"
	apperrors "mdsum/internal/errors"
)

// App wires CLI execution to process streams.
type App struct {
	stdout io.Writer
	stderr io.Writer
	stdin  io.Reader
}

// New creates an App bound to the process standard streams.
func New() App {
	return App{stdout: os.Stdout, stderr: os.Stderr, stdin: os.Stdin}
}

// Run executes the application and returns a process exit code. An interrupt
// stops hashing between chunks.
func (a App) Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := cli.NewRootCommand(a.stdout, a.stderr, a.stdin)
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(a.stderr, "error: %v\n", err)
		return apperrors.ExitCode(err)
	}

	return 0
}
