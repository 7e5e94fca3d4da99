package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/invoiceqc/internal/batch"
	"github.com/MrJamesThe3rd/invoiceqc/internal/config"
	invoiceqcHttp "github.com/MrJamesThe3rd/invoiceqc/internal/http"
	validationHandler "github.com/MrJamesThe3rd/invoiceqc/internal/http/validation"
	"github.com/MrJamesThe3rd/invoiceqc/internal/validation"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	clock, err := cfg.Clock()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var (
		validator    = validation.New(validation.WithClock(clock))
		batchService = batch.NewService(validator, cfg.Validation.Workers)
	)

	validationH := validationHandler.NewHandler(batchService, cfg.Server.MaxUploadBytes)

	router := invoiceqcHttp.New(validationH, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr)

	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
