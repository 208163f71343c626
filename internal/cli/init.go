// Package cli provides common CLI initialization utilities and the prompt
// helpers shared by cmd/spendlog and cmd/spendlog-worker.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"spendlog/internal/config"
	"spendlog/internal/ledger"
)

// SetupLogger initializes structured logging with default settings.
// Returns the configured logger and sets it as the default logger.
func SetupLogger() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// OpenLedger opens the ledger store at path and ensures the backing file
// exists. Exits the process on failure.
func OpenLedger(logger *slog.Logger, path string) *ledger.Store {
	store := ledger.Open(path)
	if err := store.EnsureInitialized(); err != nil {
		logger.Error("Failed to initialize ledger", "error", err, "path", path)
		os.Exit(1)
	}
	return store
}
