package appstager

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCopyTree(t *testing.T) {
	source := t.TempDir()
	target := filepath.Join(t.TempDir(), "target")
	if err := os.WriteFile(filepath.Join(source, "app.dll"), []byte("bin"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := CopyTree(source, target); err != nil {
		t.Fatalf("copy: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(target, "app.dll"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "bin" {
		t.Fatalf("unexpected copied content %q", string(data))
	}
}

func TestCopyTreeMissingSource(t *testing.T) {
	err := CopyTree(filepath.Join(t.TempDir(), "missing"), t.TempDir())
	if !errors.Is(err, ErrCopy) {
		t.Fatalf("expected ErrCopy, got %v", err)
	}
}
