// Command history-rewrite replays the activity stream from a start date
// and turns every step of the year-to-date totals into one git commit,
// author-dated at the moment the activity finished. Pointing it at an
// empty repository rebuilds the full stats history.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"stravaytd/internal/cli"
	"stravaytd/internal/core"
	"stravaytd/internal/log"
	"stravaytd/internal/render"
)

func main() {
	dir := flag.String("dir", "", "git repository to write the history into (required)")
	startStr := flag.String("start", "2017-01-01", "replay activities from this date (YYYY-MM-DD)")
	file := flag.String("file", "YTD Strava Stats", "filename of the stats file inside the repository")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	if *dir == "" {
		fmt.Fprintln(os.Stderr, "history-rewrite: -dir is required")
		flag.Usage()
		os.Exit(2)
	}
	start, err := time.ParseInLocation("2006-01-02", *startStr, time.Local)
	if err != nil {
		logger.Error("Invalid start date", log.FieldError, err)
		os.Exit(2)
	}
	if _, err := exec.LookPath("git"); err != nil {
		logger.Error("git not found in PATH", log.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, cleanup := cli.OpenCredentialStore(logger, cfg)
	defer cleanup()

	client := cli.NewStravaClient(logger, cfg, store)
	normalizer := cli.NewNormalizer(logger, cfg)

	trace, err := core.Aggregate(ctx, client.Pages(start), core.ModeStepped, normalizer.Normalize)
	if err != nil {
		logger.Error("Replay failed", log.FieldError, err)
		os.Exit(1)
	}
	if len(trace) == 0 {
		logger.Info("No activities after start date, nothing to rewrite")
		return
	}

	target := filepath.Join(*dir, *file)
	for _, snapshot := range trace {
		summary := render.Summary(snapshot.TopCategories(cfg.TopN), cfg.Units)
		if err := os.WriteFile(target, []byte(summary+"\n"), 0644); err != nil {
			logger.Error("Failed to write stats file", log.FieldError, err, log.FieldPath, target)
			os.Exit(1)
		}
		if err := commit(ctx, *dir, *file, snapshot.AsOf); err != nil {
			logger.Error("Commit failed", log.FieldError, err, log.FieldPath, *dir)
			os.Exit(1)
		}
	}
	logger.Info("History rewritten", log.FieldCount, len(trace), log.FieldPath, *dir)
}

// commit stages the stats file and records one commit whose author date
// is the snapshot instant.
func commit(ctx context.Context, dir, file string, asOf time.Time) error {
	add := exec.CommandContext(ctx, "git", "-C", dir, "add", file)
	if out, err := add.CombinedOutput(); err != nil {
		return fmt.Errorf("git add: %v: %s", err, out)
	}

	ci := exec.CommandContext(ctx, "git", "-C", dir, "commit", "--allow-empty-message", "-m", "")
	ci.Env = append(os.Environ(), "GIT_AUTHOR_DATE="+asOf.Format(time.RFC3339))
	if out, err := ci.CombinedOutput(); err != nil {
		return fmt.Errorf("git commit: %v: %s", err, out)
	}
	return nil
}
