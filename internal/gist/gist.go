// Package gist publishes the rendered summary to a GitHub gist.
package gist

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/go-github/v66/github"

	"stravaytd/internal/log"
)

// Client reads and rewrites the stats gist. The target is always the
// gist's first filename in sorted order, matching the one-file layout
// the published gist uses.
type Client struct {
	gh     *github.Client
	logger *log.Logger
}

func NewClient(gh *github.Client, logger *log.Logger) *Client {
	return &Client{gh: gh, logger: logger.WithComponent(log.ComponentGist)}
}

// Fetch returns the target filename and its current content.
func (c *Client) Fetch(ctx context.Context, gistID string) (filename, content string, err error) {
	g, _, err := c.gh.Gists.Get(ctx, gistID)
	if err != nil {
		return "", "", fmt.Errorf("get gist: %w", err)
	}

	names := make([]string, 0, len(g.Files))
	for name := range g.Files {
		names = append(names, string(name))
	}
	if len(names) == 0 {
		return "", "", fmt.Errorf("gist %s has no files", gistID)
	}
	sort.Strings(names)

	filename = names[0]
	if f := g.Files[github.GistFilename(filename)]; f.Content != nil {
		content = *f.Content
	}
	return filename, content, nil
}

// Write replaces the file's content.
func (c *Client) Write(ctx context.Context, gistID, filename, content string) error {
	update := &github.Gist{
		Files: map[github.GistFilename]github.GistFile{
			github.GistFilename(filename): {Content: github.String(content)},
		},
	}
	if _, _, err := c.gh.Gists.Edit(ctx, gistID, update); err != nil {
		return fmt.Errorf("update gist: %w", err)
	}
	c.logger.Info("Gist updated", log.FieldGistID, gistID, log.FieldFile, filename)
	return nil
}
