package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/appstager/internal/logfields"
)

// dirPrefix names every staging directory created by this package so stray
// directories left behind by crashed processes are recognizable in temp roots.
const dirPrefix = "appstager"

// NewStagingDir creates a new, empty, uniquely named directory under root.
// An empty root falls back to the system temp directory. Every call yields a
// distinct path; uniqueness comes from the uuid component, not from probing.
func NewStagingDir(root string) (string, error) {
	if root == "" {
		root = os.TempDir()
	}

	dir := filepath.Join(root, fmt.Sprintf("%s-%s", dirPrefix, uuid.NewString()))
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}

	slog.Debug("Created staging directory", logfields.Path(dir))
	return dir, nil
}

// Remove deletes a staging directory and everything under it. Removing a
// path that no longer exists is not an error.
func Remove(dir string) error {
	if dir == "" {
		return nil
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove staging directory: %w", err)
	}

	slog.Debug("Removed staging directory", logfields.Path(dir))
	return nil
}
