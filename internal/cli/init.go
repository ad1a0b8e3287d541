// Package cli provides common initialization shared by cmd/stravaytd,
// cmd/oauth-init and cmd/history-rewrite.
package cli

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"stravaytd/internal/config"
	"stravaytd/internal/core"
	"stravaytd/internal/log"
	"stravaytd/internal/storage"
	"stravaytd/internal/strava"
	"stravaytd/internal/tokens"
	"stravaytd/internal/tokens/file"
	"stravaytd/internal/tokens/memory"
)

// SetupLogger initializes structured logging with default settings and
// installs it as the process default.
func SetupLogger() *log.Logger {
	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. Errors are
// ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it. Returns
// the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// OpenCredentialStore selects the configured credential backend. The
// returned cleanup releases backend resources and is safe to defer.
func OpenCredentialStore(logger *log.Logger, cfg *config.Config) (tokens.Store, func()) {
	switch cfg.TokenBackend {
	case "sqlite":
		store, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to open SQLite credential store", log.FieldError, err, log.FieldDBPath, cfg.SQLiteDBPath)
			os.Exit(1)
		}
		logger.Info("Using SQLite credential store", log.FieldBackend, cfg.TokenBackend, log.FieldDBPath, cfg.SQLiteDBPath)
		return store, func() { _ = store.Close() }
	case "memory":
		logger.Info("Using in-memory credential store", log.FieldBackend, cfg.TokenBackend)
		return memory.New(), func() {}
	default:
		logger.Info("Using file credential store", log.FieldBackend, cfg.TokenBackend, log.FieldFile, cfg.TokenFile)
		return file.New(cfg.TokenFile), func() {}
	}
}

// NewStravaClient wires the browser flow, token manager and activities
// client from config.
func NewStravaClient(logger *log.Logger, cfg *config.Config, store tokens.Store) *strava.Client {
	flow := strava.NewBrowserFlow(logger)
	flow.Timeout = cfg.AuthTimeout
	manager := strava.NewTokenManager(strava.Config{
		ClientID:         cfg.StravaClientID,
		ClientSecret:     cfg.StravaClientSecret,
		SeedRefreshToken: cfg.StravaRefreshToken,
	}, store, flow, logger)
	return strava.NewClient(manager, strava.ClientConfig{
		HTTP: &http.Client{Timeout: cfg.HTTPTimeout},
	}, logger)
}

// NewNormalizer builds the category normalizer, merging the optional
// rules file from config.
func NewNormalizer(logger *log.Logger, cfg *config.Config) *core.Normalizer {
	normalizer := core.NewNormalizer()
	if cfg.CategoryRulesFile != "" {
		if err := normalizer.LoadRules(cfg.CategoryRulesFile); err != nil {
			logger.Error("Failed to load category rules", log.FieldError, err, log.FieldFile, cfg.CategoryRulesFile)
			os.Exit(1)
		}
	}
	return normalizer
}
