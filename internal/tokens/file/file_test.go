package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"stravaytd/internal/tokens"
)

func TestLoadMissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "auth.json"))
	_, found, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if found {
		t.Fatal("expected found=false for missing file")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.json")
	if err := os.WriteFile(path, []byte("  \n"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, found, err := New(path).Load(context.Background())
	if err != nil {
		t.Fatalf("expected no error for empty file, got %v", err)
	}
	if found {
		t.Fatal("expected found=false for empty file")
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.json")
	s := New(path)
	in := tokens.Credentials{AccessToken: "acc", RefreshToken: "ref"}
	if err := s.Save(context.Background(), in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, found, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !found {
		t.Fatal("expected found=true after save")
	}
	if out != in {
		t.Fatalf("roundtrip mismatch: got %+v, want %+v", out, in)
	}
}

func TestSaveOverwritesWholeRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.json")
	s := New(path)
	ctx := context.Background()
	if err := s.Save(ctx, tokens.Credentials{AccessToken: "old", RefreshToken: "old-ref"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, tokens.Credentials{RefreshToken: "new-ref"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, _, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out.AccessToken != "" || out.RefreshToken != "new-ref" {
		t.Fatalf("expected full overwrite, got %+v", out)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := New(path).Load(context.Background()); err == nil {
		t.Fatal("expected error for corrupt file")
	}
}
