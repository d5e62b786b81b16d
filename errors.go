package appstager

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigurationMismatch indicates a request named a different application
	// than the one the cache was constructed for.
	ErrConfigurationMismatch = errors.New("application path does not match cache")
	// ErrUnsupportedFeature indicates the request used a capability the cache
	// cannot serve without violating its sharing guarantees.
	ErrUnsupportedFeature = errors.New("unsupported publish feature")
	// ErrMissingFramework indicates the request did not name a target framework.
	ErrMissingFramework = errors.New("target framework not specified")
	// ErrPublishTimeout indicates the publish tool ran past the configured timeout.
	ErrPublishTimeout = errors.New("publish timed out")
	// ErrUnsupportedPlatform indicates the host OS has no runtime identifier mapping.
	ErrUnsupportedPlatform = errors.New("unsupported operating system")
	// ErrCopy indicates the recursive copy of staged output failed.
	ErrCopy = errors.New("copy failed")
	// ErrStaging indicates a staging directory could not be created.
	ErrStaging = errors.New("staging directory creation failed")
)

// PublishFailedError reports a publish run that could not start or exited
// non-zero. ExitCode is -1 when the tool never ran.
type PublishFailedError struct {
	Tool     string
	ExitCode int
	Output   string // combined tool output, empty if the tool never ran
	Err      error  // underlying start error, if any
}

func (e *PublishFailedError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("%s publish failed to start: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("%s publish exited with code %d", e.Tool, e.ExitCode)
}

func (e *PublishFailedError) Unwrap() error { return e.Err }
