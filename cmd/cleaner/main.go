package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/policy-cleaner/internal/cleaner"
	"github.com/JonMunkholm/policy-cleaner/internal/config"
	"github.com/JonMunkholm/policy-cleaner/internal/core"
	"github.com/JonMunkholm/policy-cleaner/internal/logging"
	"github.com/joho/godotenv"
)

// Exit codes.
const (
	exitOK          = 0
	exitFailure     = 1
	exitDataSource  = 2
	exitSchemaError = 3
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load .env file if it exists (existing env vars take precedence)
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		fmt.Fprintln(os.Stderr, core.FormatUserError(err))
		return exitFailure
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Debug("configuration loaded", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runID := logging.NewRunID()
	ctx = logging.WithRunID(ctx, runID)

	c := cleaner.New(cleaner.Options{
		InputPath:  cfg.Input.Path,
		OutputPath: cfg.Output.Path,
	})

	if _, err := c.Run(ctx); err != nil {
		logging.FromContext(ctx).Error("cleaning failed", "error", err, "code", core.MapError(err).Code)
		fmt.Fprintln(os.Stderr, core.FormatUserError(err))
		switch {
		case core.IsSchemaError(err):
			return exitSchemaError
		case core.IsDataSourceError(err):
			return exitDataSource
		default:
			return exitFailure
		}
	}

	fmt.Printf("Cleaned data saved to '%s'\n", cfg.Output.Path)
	return exitOK
}
