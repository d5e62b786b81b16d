// Package appstager builds and stages deployable application output for
// integration tests.
//
// A PublishCache runs the external publish tool at most once per distinct
// build configuration (target framework, configuration, application type,
// runtime architecture) and hands each request a fresh private copy of the
// cached output, so tests can mutate or delete their copy without affecting
// each other. Closing the cache deletes the cached masters with bounded
// retries.
//
//	cache := appstager.NewPublishCache("/src/myapp", nil)
//	defer cache.Close()
//
//	app, err := cache.RequestPublishedCopy(ctx, appstager.DeploymentParameters{
//		ApplicationPath: "/src/myapp",
//		TargetFramework: "net8.0",
//		Configuration:   "Release",
//		ApplicationType: appstager.ApplicationTypePortable,
//	})
//	if err != nil {
//		// handle
//	}
//	defer app.Close()
//
// The cache is safe for concurrent use; concurrent requests for an equal
// configuration share one publish run. A bare Publisher is available for
// callers that want an uncached publish with environment overrides.
package appstager
