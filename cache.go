package appstager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"git.home.luguber.info/inful/appstager/config"
	"git.home.luguber.info/inful/appstager/internal/fsutil"
	"git.home.luguber.info/inful/appstager/internal/logfields"
	"git.home.luguber.info/inful/appstager/internal/retry"
	"git.home.luguber.info/inful/appstager/internal/workspace"
	"git.home.luguber.info/inful/appstager/metrics"
)

// PublishCache publishes each distinct build configuration at most once per
// process lifetime and hands every request a fresh private copy of the cached
// output. Callers own their copies outright; the cache only ever deletes the
// master directories it built, which happens when Close is called.
//
// The cache is safe for concurrent use. Concurrent requests for an equal
// configuration share a single publish run and then copy independently.
type PublishCache struct {
	appPath   string
	settings  *config.Settings
	publisher AppPublisher
	log       *slog.Logger
	recorder  metrics.Recorder

	group   singleflight.Group
	mu      sync.Mutex
	masters map[buildKey]string
}

// NewPublishCache creates a cache bound to one application source directory.
// A nil cfg means defaults.
func NewPublishCache(appPath string, cfg *config.Settings) *PublishCache {
	if cfg == nil {
		cfg = config.Default()
	}
	return &PublishCache{
		appPath:   appPath,
		settings:  cfg,
		publisher: NewPublisher(cfg),
		log:       slog.Default(),
		recorder:  metrics.NoopRecorder{},
		masters:   map[buildKey]string{},
	}
}

// WithLogger replaces the cache logger; nil is ignored.
func (c *PublishCache) WithLogger(log *slog.Logger) *PublishCache {
	if log != nil {
		c.log = log
	}
	return c
}

// WithRecorder replaces the metrics recorder; nil is ignored.
func (c *PublishCache) WithRecorder(r metrics.Recorder) *PublishCache {
	if r != nil {
		c.recorder = r
	}
	return c
}

// WithPublisher replaces the publish strategy; nil is ignored.
func (c *PublishCache) WithPublisher(pub AppPublisher) *PublishCache {
	if pub != nil {
		c.publisher = pub
	}
	return c
}

// RequestPublishedCopy returns a fresh copy of the published output for
// params, publishing first if this configuration has not been built yet.
// The returned copy is caller-owned: mutate or delete it freely.
func (c *PublishCache) RequestPublishedCopy(ctx context.Context, params DeploymentParameters) (*PublishedApp, error) {
	if params.ApplicationPath != c.appPath {
		return nil, fmt.Errorf("%w: requested %q, cache is bound to %q", ErrConfigurationMismatch, params.ApplicationPath, c.appPath)
	}
	if err := rejectUnsupported(params); err != nil {
		return nil, err
	}

	key := keyFor(params)
	master, err := c.master(ctx, key, params)
	if err != nil {
		return nil, err
	}

	copyDir, err := c.copyOut(master)
	if err != nil {
		return nil, err
	}

	return &PublishedApp{
		Path: copyDir,
		log:  c.log,
		pol:  retry.FromSettings(c.settings),
	}, nil
}

// rejectUnsupported refuses request capabilities whose output could not be
// shared between callers.
func rejectUnsupported(params DeploymentParameters) error {
	if len(params.PublishEnvironment) > 0 {
		return fmt.Errorf("%w: publish environment overrides cannot be cached", ErrUnsupportedFeature)
	}
	if params.PublishedRootOverride != "" {
		return fmt.Errorf("%w: pre-published output cannot be cached", ErrUnsupportedFeature)
	}
	if params.RestoreOnPublish {
		return fmt.Errorf("%w: restore-on-publish cannot be cached", ErrUnsupportedFeature)
	}
	return nil
}

// master returns the master directory for key, publishing it exactly once.
// Concurrent callers with the same key block on one shared publish.
func (c *PublishCache) master(ctx context.Context, key buildKey, params DeploymentParameters) (string, error) {
	c.mu.Lock()
	dir, ok := c.masters[key]
	c.mu.Unlock()
	c.recorder.IncCacheLookup(ok)
	if ok {
		c.log.Debug("Publish cache hit", logfields.BuildKey(key.String()), logfields.Path(dir))
		return dir, nil
	}

	v, err, shared := c.group.Do(key.groupKey(), func() (interface{}, error) {
		// A queued caller may arrive after the winning flight registered the
		// master and left; the map is the source of truth.
		c.mu.Lock()
		if dir, ok := c.masters[key]; ok {
			c.mu.Unlock()
			return dir, nil
		}
		c.mu.Unlock()
		return c.publishMaster(ctx, key, params)
	})
	if err != nil {
		return "", err
	}
	if shared {
		c.log.Debug("Publish coalesced with concurrent request", logfields.BuildKey(key.String()))
	}
	return v.(string), nil
}

// publishMaster publishes into a fresh staging directory and registers it as
// the master for key. Failed publishes register nothing; their staging
// directory is removed best-effort.
func (c *PublishCache) publishMaster(ctx context.Context, key buildKey, params DeploymentParameters) (string, error) {
	dir, err := workspace.NewStagingDir(c.settings.StagingRoot)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStaging, err)
	}

	c.log.Info("Publishing master output", logfields.BuildKey(key.String()), logfields.Path(dir))
	start := time.Now()
	pubErr := c.publisher.Publish(ctx, params, dir)
	elapsed := time.Since(start)
	c.recorder.ObservePublishDuration(key.framework, elapsed, pubErr == nil)

	if pubErr != nil {
		c.recorder.IncPublishOutcome(outcomeFor(pubErr))
		if rmErr := workspace.Remove(dir); rmErr != nil {
			c.log.Warn("Failed to remove staging directory after failed publish",
				logfields.Path(dir), logfields.Error(rmErr))
		}
		return "", pubErr
	}
	c.recorder.IncPublishOutcome(metrics.OutcomeSuccess)

	c.mu.Lock()
	c.masters[key] = dir
	c.mu.Unlock()

	c.log.Info("Cached master output",
		logfields.BuildKey(key.String()),
		logfields.Path(dir),
		logfields.DurationMS(float64(elapsed.Milliseconds())))
	return dir, nil
}

// copyOut stages a fresh caller-owned copy of a master directory.
func (c *PublishCache) copyOut(master string) (string, error) {
	dir, err := workspace.NewStagingDir(c.settings.StagingRoot)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStaging, err)
	}

	start := time.Now()
	if err := fsutil.CopyTree(master, dir); err != nil {
		if rmErr := workspace.Remove(dir); rmErr != nil {
			c.log.Warn("Failed to remove staging directory after failed copy",
				logfields.Path(dir), logfields.Error(rmErr))
		}
		return "", fmt.Errorf("%w: %w", ErrCopy, err)
	}
	c.recorder.ObserveCopyDuration(time.Since(start))

	c.log.Debug("Staged published copy", logfields.Source(master), logfields.Target(dir))
	return dir, nil
}

// Close deletes every master directory under the configured retry policy.
// Deletions that keep failing are logged and skipped so one stuck directory
// never blocks the rest; Close always returns nil. Copies handed to callers
// are never touched. A second Close is a no-op.
func (c *PublishCache) Close() error {
	c.mu.Lock()
	masters := c.masters
	c.masters = map[buildKey]string{}
	c.mu.Unlock()

	pol := retry.FromSettings(c.settings)
	for key, dir := range masters {
		err := retry.Do(pol, "remove master output", func() error {
			return workspace.Remove(dir)
		})
		c.recorder.IncCleanupResult(err == nil)
		if err != nil {
			c.log.Warn("Abandoning master output directory",
				logfields.BuildKey(key.String()),
				logfields.Path(dir),
				logfields.Error(err))
			continue
		}
		c.log.Debug("Removed master output", logfields.BuildKey(key.String()), logfields.Path(dir))
	}
	return nil
}

func outcomeFor(err error) metrics.OutcomeLabel {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	if errors.Is(err, ErrPublishTimeout) {
		return metrics.OutcomeTimeout
	}
	return metrics.OutcomeFailed
}
