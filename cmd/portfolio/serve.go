package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"portfolio/internal/app"
	"portfolio/internal/lib/logger/sl"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := setupLogger(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	application, err := app.New(ctx, log, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	if err := application.SeedAdmin(ctx); err != nil {
		log.Error("failed to seed admin", sl.Err(err))
	}

	log.Info("starting application", slog.String("env", cfg.Env))

	if err := application.Run(ctx); err != nil {
		return err
	}

	log.Info("Gracefully stopped")

	return nil
}
