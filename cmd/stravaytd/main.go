package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/go-github/v66/github"
	"golang.org/x/sync/errgroup"

	"stravaytd/internal/cli"
	"stravaytd/internal/core"
	"stravaytd/internal/gist"
	"stravaytd/internal/log"
	"stravaytd/internal/render"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, cleanup := cli.OpenCredentialStore(logger, cfg)
	defer cleanup()

	client := cli.NewStravaClient(logger, cfg, store)
	normalizer := cli.NewNormalizer(logger, cfg)

	now := time.Now()
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.Local)

	var (
		trace       []core.Snapshot
		gistFile    string
		gistContent string
		publishGist = cfg.GistID != ""
		gistPub     *gist.Client
	)
	if publishGist {
		gh := github.NewClient(nil).WithAuthToken(cfg.GithubToken)
		gistPub = gist.NewClient(gh, logger)
	}

	// The gist read is independent of the stats run, so both go out at
	// the same time.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		trace, err = core.Aggregate(gctx, client.Pages(yearStart), core.ModeSnapshot, normalizer.Normalize)
		return err
	})
	if publishGist {
		g.Go(func() error {
			var err error
			gistFile, gistContent, err = gistPub.Fetch(gctx, cfg.GistID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("Stats run failed", log.FieldError, err, log.FieldYear, now.Year())
		os.Exit(1)
	}

	var summary string
	if len(trace) > 0 {
		snapshot := trace[len(trace)-1]
		summary = render.Summary(snapshot.TopCategories(cfg.TopN), cfg.Units)
	}
	if summary == "" {
		logger.Info("No activities recorded yet this year", log.FieldYear, now.Year())
	} else {
		fmt.Println(summary)
	}

	if !publishGist {
		return
	}
	if summary == gistContent {
		logger.Info("Gist already up to date", log.FieldGistID, cfg.GistID)
		return
	}
	if err := gistPub.Write(ctx, cfg.GistID, gistFile, summary); err != nil {
		logger.Error("Failed to update gist", log.FieldError, err, log.FieldGistID, cfg.GistID)
		os.Exit(1)
	}
}
