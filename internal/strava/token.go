package strava

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"stravaytd/internal/log"
	"stravaytd/internal/tokens"
)

// tokenState tracks how far the manager trusts its in-memory credentials.
type tokenState int

const (
	// stateUnset: no credentials anywhere in memory.
	stateUnset tokenState = iota
	// stateCached: loaded from storage, access token unverified.
	stateCached
	// stateValid: the last exchange or use succeeded.
	stateValid
	// stateReauthorizing: interactive flow in progress.
	stateReauthorizing
)

var defaultEndpoint = oauth2.Endpoint{
	AuthURL:  "https://www.strava.com/oauth/authorize",
	TokenURL: "https://www.strava.com/oauth/token",
	// Strava wants client_id/client_secret as form fields, not basic auth.
	AuthStyle: oauth2.AuthStyleInParams,
}

// Strava expects a comma-separated scope list, so the whole set rides in
// a single scope entry.
var defaultScopes = []string{"read_all,profile:read_all,activity:read_all"}

// Config carries the OAuth client settings for the Strava API.
type Config struct {
	ClientID     string
	ClientSecret string
	// SeedRefreshToken is used when the store holds no record yet.
	SeedRefreshToken string
	// Endpoint overrides the Strava OAuth endpoint, for tests.
	Endpoint oauth2.Endpoint
	Scopes   []string
}

// CodeSource obtains a one-time authorization code, typically by sending
// the operator through the browser.
type CodeSource interface {
	ObtainCode(ctx context.Context, cfg *oauth2.Config) (string, error)
}

// TokenManager owns the credential pair. Every mutation is persisted to
// the store before the new token is handed out.
type TokenManager struct {
	oauth  *oauth2.Config
	store  tokens.Store
	flow   CodeSource
	logger *log.Logger

	state tokenState
	creds tokens.Credentials
	seed  string
}

func NewTokenManager(cfg Config, store tokens.Store, flow CodeSource, logger *log.Logger) *TokenManager {
	endpoint := cfg.Endpoint
	if endpoint.TokenURL == "" {
		endpoint = defaultEndpoint
	}
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = defaultScopes
	}
	return &TokenManager{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     endpoint,
			Scopes:       scopes,
		},
		store:  store,
		flow:   flow,
		logger: logger.WithComponent(log.ComponentAuth),
		seed:   cfg.SeedRefreshToken,
	}
}

// AccessToken returns a bearer token, refreshing or reauthorizing as
// needed. A cached access token is returned without I/O only after it
// has been validated once; force skips that shortcut.
func (m *TokenManager) AccessToken(ctx context.Context, force bool) (string, error) {
	if m.state == stateValid && !force {
		return m.creds.AccessToken, nil
	}

	if m.state == stateUnset {
		creds, found, err := m.store.Load(ctx)
		if err != nil {
			return "", fmt.Errorf("load credentials: %w", err)
		}
		switch {
		case found:
			m.creds = creds
			m.state = stateCached
		case m.seed != "":
			m.creds = tokens.Credentials{RefreshToken: m.seed}
			m.state = stateCached
		}
	}

	if m.creds.RefreshToken == "" {
		// Nothing to refresh with; only the interactive flow can help.
		if err := m.Reauthorize(ctx); err != nil {
			return "", err
		}
		return m.creds.AccessToken, nil
	}

	if err := m.refresh(ctx); err != nil {
		return "", err
	}
	return m.creds.AccessToken, nil
}

// Reauthorize drives the interactive browser flow and exchanges the
// resulting code. This is also the chosen recovery when an API call comes
// back unauthorized; a refresh grant is deliberately not attempted there.
func (m *TokenManager) Reauthorize(ctx context.Context) error {
	m.state = stateReauthorizing
	code, err := m.flow.ObtainCode(ctx, m.oauth)
	if err != nil {
		m.state = stateUnset
		return err
	}

	token, err := m.oauth.Exchange(ctx, code)
	if err != nil {
		m.state = stateUnset
		return &TokenExchangeError{Err: err}
	}
	m.logger.Info("Authorization code exchanged")
	return m.adopt(ctx, token)
}

// Credentials returns the current in-memory credential pair.
func (m *TokenManager) Credentials() tokens.Credentials {
	return m.creds
}

func (m *TokenManager) refresh(ctx context.Context) error {
	src := m.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: m.creds.RefreshToken})
	token, err := src.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTokenRefresh, err)
	}
	m.logger.Debug("Access token refreshed")
	return m.adopt(ctx, token)
}

// adopt stores the token pair, persists it and marks the state valid.
func (m *TokenManager) adopt(ctx context.Context, token *oauth2.Token) error {
	m.creds.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		// The provider may rotate the refresh token on every grant.
		m.creds.RefreshToken = token.RefreshToken
	}
	if err := m.store.Save(ctx, m.creds); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	m.state = stateValid
	return nil
}
