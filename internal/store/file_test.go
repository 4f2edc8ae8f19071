package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "candidates.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestFileSourceFetchAll(t *testing.T) {
	path := writeSnapshot(t, `{"items": [
		{"id": "c1", "name": "Alice", "email": " Alice@Example.COM ", "experience": 3},
		{"name": "Bob", "job_title": "Designer"}
	]}`)

	candidates, err := NewFileSource(path).FetchAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if candidates.Len() != 2 {
		t.Fatalf("expected 2 candidates, got %d", candidates.Len())
	}

	first := candidates.Items[0]
	if first.ID != "c1" {
		t.Fatalf("unexpected id: %q", first.ID)
	}
	if first.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", first.Email)
	}

	second := candidates.Items[1]
	if second.ID == "" {
		t.Fatal("expected generated id for record without one")
	}
	if second.Experience == nil || *second.Experience != 0 {
		t.Fatalf("expected defaulted experience, got %v", second.Experience)
	}
}

func TestFileSourceEmptyFile(t *testing.T) {
	path := writeSnapshot(t, "")

	candidates, err := NewFileSource(path).FetchAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if candidates.Len() != 0 {
		t.Fatalf("expected empty snapshot, got %d items", candidates.Len())
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "nope.json"))

	if _, err := src.FetchAll(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}
