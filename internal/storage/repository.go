package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"stravaytd/internal/tokens"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the credential record in a single-row table. Same
// contract as the file store: full overwrite on save, found=false when
// the row does not exist yet.
type SQLiteStore struct {
	db *sql.DB
}

var _ tokens.Store = (*SQLiteStore)(nil)

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load implements tokens.Store
func (s *SQLiteStore) Load(ctx context.Context) (tokens.Credentials, bool, error) {
	var creds tokens.Credentials
	row := s.db.QueryRowContext(ctx,
		`SELECT access_token, refresh_token FROM credentials WHERE id = 1`)
	err := row.Scan(&creds.AccessToken, &creds.RefreshToken)
	if errors.Is(err, sql.ErrNoRows) {
		return tokens.Credentials{}, false, nil
	}
	if err != nil {
		return tokens.Credentials{}, false, fmt.Errorf("load credentials: %w", err)
	}
	return creds, true, nil
}

// Save implements tokens.Store
func (s *SQLiteStore) Save(ctx context.Context, creds tokens.Credentials) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO credentials (id, access_token, refresh_token, updated_at)
		 VALUES (1, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET
		   access_token = excluded.access_token,
		   refresh_token = excluded.refresh_token,
		   updated_at = excluded.updated_at`,
		creds.AccessToken, creds.RefreshToken)
	if err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}

	slog.DebugContext(ctx, "Credentials saved to SQLite")
	return nil
}
