// Command oauth-init drives the interactive Strava authorization once
// and persists the resulting credentials, so that later stats runs can
// start from a stored refresh token.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stravaytd/internal/cli"
	"stravaytd/internal/log"
	"stravaytd/internal/strava"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, cleanup := cli.OpenCredentialStore(logger, cfg)
	defer cleanup()

	flow := strava.NewBrowserFlow(logger)
	flow.Timeout = cfg.AuthTimeout
	if flow.Timeout == 0 {
		// A one-shot init should not hang forever on a closed browser tab.
		flow.Timeout = 5 * time.Minute
	}

	manager := strava.NewTokenManager(strava.Config{
		ClientID:         cfg.StravaClientID,
		ClientSecret:     cfg.StravaClientSecret,
		SeedRefreshToken: cfg.StravaRefreshToken,
	}, store, flow, logger)

	if err := manager.Reauthorize(ctx); err != nil {
		logger.Error("Authorization failed", log.FieldError, err)
		os.Exit(1)
	}

	creds := manager.Credentials()
	logger.Info("Credentials stored", log.FieldBackend, cfg.TokenBackend)
	fmt.Printf("Refresh token: %s\n", creds.RefreshToken)
}
