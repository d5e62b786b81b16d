package appstager

import (
	"log/slog"

	"git.home.luguber.info/inful/appstager/internal/logfields"
	"git.home.luguber.info/inful/appstager/internal/retry"
	"git.home.luguber.info/inful/appstager/internal/workspace"
)

// PublishedApp is one caller-owned copy of published output. The caller may
// mutate or delete anything under Path; the cache never touches it again.
type PublishedApp struct {
	// Path is the root of the copied publish output.
	Path string

	log *slog.Logger
	pol retry.Policy
}

// Close removes the copy, applying the same bounded retry used for master
// directories. Failure is logged and swallowed: copies live under the staging
// root, where leftovers are expected after hard crashes anyway. Close is
// idempotent.
func (a *PublishedApp) Close() error {
	if a == nil || a.Path == "" {
		return nil
	}
	log := a.log
	if log == nil {
		log = slog.Default()
	}
	pol := a.pol
	if pol == (retry.Policy{}) {
		pol = retry.DefaultPolicy()
	}

	path := a.Path
	a.Path = ""
	if err := retry.Do(pol, "remove published copy", func() error {
		return workspace.Remove(path)
	}); err != nil {
		log.Warn("Abandoning published copy", logfields.Path(path), logfields.Error(err))
	}
	return nil
}
