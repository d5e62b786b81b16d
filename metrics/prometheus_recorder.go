package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once            sync.Once
	publishDuration *prom.HistogramVec
	publishOutcome  *prom.CounterVec
	cacheLookups    *prom.CounterVec
	copyDuration    prom.Histogram
	cleanupResults  *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.publishDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "appstager",
			Name:      "publish_duration_seconds",
			Help:      "Duration of publish tool invocations",
			Buckets:   prom.DefBuckets,
		}, []string{"framework", "result"})
		pr.publishOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "appstager",
			Name:      "publish_outcomes_total",
			Help:      "Publish outcomes by final status",
		}, []string{"outcome"})
		pr.cacheLookups = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "appstager",
			Name:      "cache_lookups_total",
			Help:      "Publish cache lookups by hit/miss",
		}, []string{"result"})
		pr.copyDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "appstager",
			Name:      "copy_duration_seconds",
			Help:      "Duration of staged output copies",
			Buckets:   prom.DefBuckets,
		})
		pr.cleanupResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "appstager",
			Name:      "cleanup_results_total",
			Help:      "Staged directory cleanup results by success/failure",
		}, []string{"result"})
		reg.MustRegister(pr.publishDuration, pr.publishOutcome, pr.cacheLookups, pr.copyDuration, pr.cleanupResults)
	})
	return pr
}

func (p *PrometheusRecorder) ObservePublishDuration(framework string, d time.Duration, success bool) {
	if p == nil || p.publishDuration == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.publishDuration.WithLabelValues(framework, res).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPublishOutcome(outcome OutcomeLabel) {
	if p == nil || p.publishOutcome == nil {
		return
	}
	p.publishOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncCacheLookup(hit bool) {
	if p == nil || p.cacheLookups == nil {
		return
	}
	res := "miss"
	if hit {
		res = "hit"
	}
	p.cacheLookups.WithLabelValues(res).Inc()
}

func (p *PrometheusRecorder) ObserveCopyDuration(d time.Duration) {
	if p == nil || p.copyDuration == nil {
		return
	}
	p.copyDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncCleanupResult(success bool) {
	if p == nil || p.cleanupResults == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.cleanupResults.WithLabelValues(res).Inc()
}
