package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Strava OAuth client
	StravaClientID     string
	StravaClientSecret string
	// Seed refresh token used when the credential store holds no record yet.
	StravaRefreshToken string

	// Credential persistence
	TokenBackend string // file, sqlite or memory
	TokenFile    string
	SQLiteDBPath string

	// Report
	Units string // meters, km or miles
	TopN  int

	// Gist publishing (optional)
	GistID      string
	GithubToken string

	// Category normalization overrides (optional YAML file)
	CategoryRulesFile string

	// Timeouts. AuthTimeout of zero waits for the browser redirect forever.
	AuthTimeout time.Duration
	HTTPTimeout time.Duration
}

func Load() *Config {
	cfg := &Config{
		StravaClientID:     getEnv("STRAVA_CLIENT_ID", ""),
		StravaClientSecret: getEnv("STRAVA_CLIENT_SECRET", ""),
		StravaRefreshToken: getEnv("STRAVA_REFRESH_TOKEN", ""),

		TokenBackend: getEnv("TOKEN_BACKEND", "file"),
		TokenFile:    getEnv("TOKEN_FILE", "strava-auth.json"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/stravaytd.db"),

		Units: getEnv("UNITS", "meters"),
		TopN:  getEnvInt("TOP_N", 3),

		GistID:      getEnv("GIST_ID", ""),
		GithubToken: getEnv("GITHUB_TOKEN", ""),

		CategoryRulesFile: getEnv("CATEGORY_RULES_FILE", ""),

		AuthTimeout: getEnvDuration("AUTH_TIMEOUT", 0),
		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 60*time.Second),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.StravaClientID == "" {
		errors = append(errors, "STRAVA_CLIENT_ID must be provided")
	}
	if c.StravaClientSecret == "" {
		errors = append(errors, "STRAVA_CLIENT_SECRET must be provided")
	}

	validBackends := []string{"file", "sqlite", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.TokenBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid token backend '%s': must be one of %v", c.TokenBackend, validBackends))
	}

	if c.TokenBackend == "file" && strings.TrimSpace(c.TokenFile) == "" {
		errors = append(errors, "token file path cannot be empty when using file backend")
	}

	if c.TokenBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	validUnits := []string{"meters", "km", "miles"}
	isValidUnit := false
	for _, unit := range validUnits {
		if c.Units == unit {
			isValidUnit = true
			break
		}
	}
	if !isValidUnit {
		errors = append(errors, fmt.Sprintf("invalid units '%s': must be one of %v", c.Units, validUnits))
	}

	if c.TopN < 1 {
		errors = append(errors, fmt.Sprintf("invalid top N %d: must be at least 1", c.TopN))
	} else if c.TopN > 25 {
		errors = append(errors, fmt.Sprintf("invalid top N %d: must be at most 25", c.TopN))
	}

	// Gist publishing needs both halves or neither.
	if c.GistID != "" && c.GithubToken == "" {
		errors = append(errors, "GITHUB_TOKEN must be provided when GIST_ID is set")
	}
	if c.GistID == "" && c.GithubToken != "" {
		errors = append(errors, "GIST_ID must be provided when GITHUB_TOKEN is set")
	}

	if c.CategoryRulesFile != "" {
		if _, err := os.Stat(c.CategoryRulesFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("category rules file does not exist: %s", c.CategoryRulesFile))
		}
	}

	if c.AuthTimeout < 0 {
		errors = append(errors, fmt.Sprintf("invalid auth timeout %v: must not be negative", c.AuthTimeout))
	}
	if c.HTTPTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must be at least 1 second", c.HTTPTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
