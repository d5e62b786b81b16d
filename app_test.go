package appstager

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func stagedCopy(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "copy")
	if err := os.MkdirAll(filepath.Join(dir, "wwwroot"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "app.dll"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return dir
}

func TestPublishedAppCloseRemovesCopy(t *testing.T) {
	dir := stagedCopy(t)
	app := &PublishedApp{Path: dir}

	if err := app.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := os.Stat(dir); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected copy to be removed, stat returned %v", err)
	}
	if app.Path != "" {
		t.Fatalf("expected Path to be cleared, got %q", app.Path)
	}
}

func TestPublishedAppCloseIdempotent(t *testing.T) {
	app := &PublishedApp{Path: stagedCopy(t)}
	if err := app.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := app.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestPublishedAppCloseZeroValues(t *testing.T) {
	var nilApp *PublishedApp
	if err := nilApp.Close(); err != nil {
		t.Fatalf("nil receiver: %v", err)
	}
	if err := (&PublishedApp{}).Close(); err != nil {
		t.Fatalf("empty path: %v", err)
	}
}

func TestPublishedAppCloseMissingPath(t *testing.T) {
	app := &PublishedApp{Path: filepath.Join(t.TempDir(), "already-gone")}
	if err := app.Close(); err != nil {
		t.Fatalf("close of missing path: %v", err)
	}
}
