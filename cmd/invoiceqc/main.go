package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)

	switch {
	case err == nil:
		return
	case errors.Is(err, errInvalidInvoices):
		os.Exit(1)
	}

	slog.Error("command failed", "error", err)
	os.Exit(1)
}
