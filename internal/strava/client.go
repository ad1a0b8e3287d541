package strava

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"stravaytd/internal/core"
	"stravaytd/internal/log"
)

const (
	defaultBaseURL = "https://www.strava.com/api/v3"
	// Remote page size; pagination ends on the first empty page.
	perPage = 200
)

var errUnauthorized = errors.New("unauthorized")

// activityRecord is the wire shape of one activities-endpoint element.
type activityRecord struct {
	Type        string    `json:"type"`
	Distance    float64   `json:"distance"`
	MovingTime  int64     `json:"moving_time"`
	ElapsedTime int64     `json:"elapsed_time"`
	StartDate   time.Time `json:"start_date"`
}

// ClientConfig tunes the activities client. Zero values pick the public
// API and a 60 second request timeout.
type ClientConfig struct {
	BaseURL string
	HTTP    *http.Client
}

// Client is a paginated reader of the athlete's activity feed.
type Client struct {
	http    *http.Client
	baseURL string
	tokens  *TokenManager
	logger  *log.Logger
}

func NewClient(tm *TokenManager, cfg ClientConfig, logger *log.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		tokens:  tm,
		logger:  logger.WithComponent(log.ComponentStrava),
	}
}

// FetchPage returns one page of activities (fixed size 200, 1-based page
// numbers). When the request comes back unauthorized the client
// reauthorizes interactively and retries the same page exactly once.
func (c *Client) FetchPage(ctx context.Context, page int, after time.Time) ([]core.Activity, error) {
	activities, err := c.fetchPage(ctx, page, after, false)
	if err == nil || !errors.Is(err, errUnauthorized) {
		return activities, err
	}

	c.logger.Warn("Activities request unauthorized, reauthorizing", log.FieldPage, page)
	if err := c.tokens.Reauthorize(ctx); err != nil {
		return nil, err
	}
	return c.fetchPage(ctx, page, after, true)
}

func (c *Client) fetchPage(ctx context.Context, page int, after time.Time, retried bool) ([]core.Activity, error) {
	token, err := c.tokens.AccessToken(ctx, false)
	if err != nil {
		// A rejected refresh grant gets the same recovery as an
		// unauthorized response: one interactive reauthorization.
		if errors.Is(err, ErrTokenRefresh) && !retried {
			return nil, errUnauthorized
		}
		return nil, err
	}

	url := fmt.Sprintf("%s/athlete/activities?after=%d&per_page=%d&page=%d",
		c.baseURL, after.Unix(), perPage, page)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build activities request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch activities page %d: %w", page, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read activities response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if retried {
			return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
		}
		return nil, errUnauthorized
	case resp.StatusCode != http.StatusOK:
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	var records []activityRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, &APIError{Status: resp.StatusCode, Body: fmt.Sprintf("malformed activities payload: %v", err)}
	}

	activities := make([]core.Activity, 0, len(records))
	for _, r := range records {
		activities = append(activities, core.Activity{
			Category:           r.Type,
			DistanceMeters:     r.Distance,
			MovingTimeSeconds:  r.MovingTime,
			ElapsedTimeSeconds: r.ElapsedTime,
			Start:              r.StartDate,
		})
	}
	c.logger.Debug("Fetched activities page", log.FieldPage, page, log.FieldCount, len(activities))
	return activities, nil
}

// Pager walks the activities endpoint from page 1 until an empty page.
type Pager struct {
	client *Client
	after  time.Time
	page   int
	done   bool
}

var _ core.Source = (*Pager)(nil)

// Pages returns a fresh pager over activities after the given instant.
func (c *Client) Pages(after time.Time) *Pager {
	return &Pager{client: c, after: after}
}

// NextPage implements core.Source.
func (p *Pager) NextPage(ctx context.Context) ([]core.Activity, error) {
	if p.done {
		return nil, nil
	}
	p.page++
	activities, err := p.client.FetchPage(ctx, p.page, p.after)
	if err != nil {
		return nil, err
	}
	if len(activities) == 0 {
		p.done = true
	}
	return activities, nil
}
