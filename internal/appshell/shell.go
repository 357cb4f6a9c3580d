package appshell

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// ExitInterrupted is the exit code of a run stopped by SIGINT/SIGTERM.
const ExitInterrupted = 130

// RunFunc is an app entry point such as app.RunContext.
type RunFunc func(context.Context, []string, io.Writer, io.Writer) int

// Main runs fn under a context cancelled by SIGINT/SIGTERM and exits with
// its code.
func Main(fn RunFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Run(ctx, fn, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// Run calls fn and, when ctx was cancelled, reports the interruption on
// stderr and returns ExitInterrupted unless fn already failed with its own code.
func Run(ctx context.Context, fn RunFunc, argv []string, stdout, stderr io.Writer) int {
	code := fn(ctx, argv, stdout, stderr)
	if ctx.Err() == nil {
		return code
	}
	if code == 0 || code == ExitInterrupted {
		_, _ = fmt.Fprintln(stderr, "interrupted; chunk files written so far are kept")
		return ExitInterrupted
	}
	return code
}
