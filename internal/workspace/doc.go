// Package workspace allocates uniquely named staging directories for publish
// output and for the per-request copies handed to callers.
//
// Directories are named appstager-<uuid> under the configured staging root
// (system temp by default), so concurrent allocations never collide and
// leftovers from crashed processes are easy to identify and sweep.
package workspace
