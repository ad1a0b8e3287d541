package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		StravaClientID:     "12345",
		StravaClientSecret: "secret",
		TokenBackend:       "file",
		TokenFile:          "strava-auth.json",
		Units:              "meters",
		TopN:               3,
		HTTPTimeout:        60 * time.Second,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid file backend config",
			mutate: func(c *Config) {},
		},
		{
			name: "valid memory backend config",
			mutate: func(c *Config) {
				c.TokenBackend = "memory"
				c.TokenFile = ""
			},
		},
		{
			name:        "missing client id",
			mutate:      func(c *Config) { c.StravaClientID = "" },
			wantErr:     true,
			errorString: "STRAVA_CLIENT_ID must be provided",
		},
		{
			name:        "missing client secret",
			mutate:      func(c *Config) { c.StravaClientSecret = "" },
			wantErr:     true,
			errorString: "STRAVA_CLIENT_SECRET must be provided",
		},
		{
			name:        "invalid token backend",
			mutate:      func(c *Config) { c.TokenBackend = "redis" },
			wantErr:     true,
			errorString: "invalid token backend 'redis'",
		},
		{
			name: "file backend without token file",
			mutate: func(c *Config) {
				c.TokenFile = " "
			},
			wantErr:     true,
			errorString: "token file path cannot be empty",
		},
		{
			name: "sqlite backend without db path",
			mutate: func(c *Config) {
				c.TokenBackend = "sqlite"
				c.SQLiteDBPath = ""
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name:        "invalid units",
			mutate:      func(c *Config) { c.Units = "furlongs" },
			wantErr:     true,
			errorString: "invalid units 'furlongs'",
		},
		{
			name:        "top N too small",
			mutate:      func(c *Config) { c.TopN = 0 },
			wantErr:     true,
			errorString: "invalid top N 0",
		},
		{
			name:        "top N too large",
			mutate:      func(c *Config) { c.TopN = 100 },
			wantErr:     true,
			errorString: "invalid top N 100",
		},
		{
			name:        "gist id without github token",
			mutate:      func(c *Config) { c.GistID = "abc123" },
			wantErr:     true,
			errorString: "GITHUB_TOKEN must be provided",
		},
		{
			name:        "github token without gist id",
			mutate:      func(c *Config) { c.GithubToken = "ghp_x" },
			wantErr:     true,
			errorString: "GIST_ID must be provided",
		},
		{
			name:        "missing category rules file",
			mutate:      func(c *Config) { c.CategoryRulesFile = "/nonexistent/rules.yaml" },
			wantErr:     true,
			errorString: "category rules file does not exist",
		},
		{
			name:        "http timeout too small",
			mutate:      func(c *Config) { c.HTTPTimeout = 10 * time.Millisecond },
			wantErr:     true,
			errorString: "invalid HTTP timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errorString)
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("expected error containing %q, got %q", tt.errorString, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestConfig_ValidateCreatesSQLiteDir(t *testing.T) {
	cfg := validConfig()
	cfg.TokenBackend = "sqlite"
	cfg.SQLiteDBPath = filepath.Join(t.TempDir(), "nested", "creds.db")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.TokenBackend != "file" {
		t.Fatalf("expected default token backend 'file', got %q", cfg.TokenBackend)
	}
	if cfg.TokenFile != "strava-auth.json" {
		t.Fatalf("expected default token file, got %q", cfg.TokenFile)
	}
	if cfg.Units != "meters" {
		t.Fatalf("expected default units 'meters', got %q", cfg.Units)
	}
	if cfg.TopN != 3 {
		t.Fatalf("expected default top N 3, got %d", cfg.TopN)
	}
	if cfg.AuthTimeout != 0 {
		t.Fatalf("expected no default auth timeout, got %v", cfg.AuthTimeout)
	}
}
