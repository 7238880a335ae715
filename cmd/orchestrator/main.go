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

	app, cleanup, err := infrastructure.BootstrapOrchestrator(ctx)
	if err != nil {
		slog.Error("bootstrap failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	slog.Info("payments orchestrator starting")
	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		slog.Error("payments orchestrator exited", "error", err)
		os.Exit(1)
	}
	slog.Info("payments orchestrator stopped")
}
