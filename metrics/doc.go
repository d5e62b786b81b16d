// Package metrics provides observability hooks for publish, cache and
// cleanup activity.
//
// The package implements the Null Object pattern so components never need
// nil checks: everything defaults to NoopRecorder, whose methods compile to
// nothing. To collect metrics, inject a real implementation instead:
//
//	recorder := metrics.NewPrometheusRecorder(registry)
//	cache := appstager.NewPublishCache(path, cfg).WithRecorder(recorder)
//
// Exposition is the caller's concern; this package only registers collectors
// on the registry it is given.
package metrics
