// Package main is the entry point for lenv.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/javanstorm/lenv/internal/cli"
	"github.com/javanstorm/lenv/internal/env"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.Execute(ctx)
	interrupted := ctx.Err() != nil
	stop()

	os.Exit(exitCode(err, interrupted))
}

// exitCode reports err to the user and maps it to the process exit status.
func exitCode(err error, interrupted bool) int {
	var exitErr *cli.ExitError
	switch {
	case err == nil:
		return 0
	case errors.Is(err, env.ErrInstallPending):
		return 0
	case errors.As(err, &exitErr):
		return exitErr.Code
	case interrupted || errors.Is(err, context.Canceled):
		fmt.Fprintln(os.Stderr, "\nInterrupted by user")
		return 1
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
}
