// Package file persists credentials as a single JSON file, the layout the
// original auth cache used.
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"stravaytd/internal/tokens"
)

type Store struct {
	path string
}

var _ tokens.Store = (*Store)(nil)

func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the credential record. A missing or empty file means no
// record yet, not an error.
func (s *Store) Load(ctx context.Context) (tokens.Credentials, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return tokens.Credentials{}, false, nil
	}
	if err != nil {
		return tokens.Credentials{}, false, fmt.Errorf("read credential file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return tokens.Credentials{}, false, nil
	}
	var creds tokens.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return tokens.Credentials{}, false, fmt.Errorf("parse credential file: %w", err)
	}
	return creds, true, nil
}

// Save overwrites the whole record.
func (s *Store) Save(ctx context.Context, creds tokens.Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write credential file: %w", err)
	}
	return nil
}
