// Package main is the entry point for the themekit API server. The default
// command serves the API; subcommands run migrations, seed development data
// and tail theme events.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("themekit failed", "error", err)
		stop()
		os.Exit(1)
	}
}
