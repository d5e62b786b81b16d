package appstager

import (
	"fmt"

	"git.home.luguber.info/inful/appstager/internal/fsutil"
)

// CopyTree recursively copies the directory tree at source into target,
// creating target and any missing subdirectories. It is the same copier the
// cache uses to stage per-request copies, exported for harnesses that manage
// their own directories.
func CopyTree(source, target string) error {
	if err := fsutil.CopyTree(source, target); err != nil {
		return fmt.Errorf("%w: %w", ErrCopy, err)
	}
	return nil
}
