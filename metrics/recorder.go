package metrics

import "time"

// OutcomeLabel enumerates publish outcome categories for counters.
type OutcomeLabel string

const (
	OutcomeSuccess OutcomeLabel = "success"
	OutcomeFailed  OutcomeLabel = "failed"
	OutcomeTimeout OutcomeLabel = "timeout"
)

// Recorder defines observability hooks for publish, cache and cleanup
// activity. Implementations may forward to Prometheus, OpenTelemetry, etc.
// All methods must be safe for nil receivers when using the NoopRecorder
// (allowing optional injection).
type Recorder interface {
	ObservePublishDuration(framework string, d time.Duration, success bool)
	IncPublishOutcome(outcome OutcomeLabel)
	IncCacheLookup(hit bool)
	ObserveCopyDuration(d time.Duration)
	IncCleanupResult(success bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObservePublishDuration(string, time.Duration, bool) {}
func (NoopRecorder) IncPublishOutcome(OutcomeLabel)                     {}
func (NoopRecorder) IncCacheLookup(bool)                                {}
func (NoopRecorder) ObserveCopyDuration(time.Duration)                  {}
func (NoopRecorder) IncCleanupResult(bool)                              {}
