package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"payhold/internal/infrastructure"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := infrastructure.BootstrapLedger(ctx)
	if err != nil {
		slog.Error("bootstrap failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	slog.Info("ledger service starting")
	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		slog.Error("ledger service exited", "error", err)
		os.Exit(1)
	}
	slog.Info("ledger service stopped")
}
