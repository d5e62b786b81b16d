package appstager

import "strings"

// ApplicationType selects how published output carries its runtime.
type ApplicationType string

const (
	// ApplicationTypePortable publishes framework-dependent output that runs
	// on a shared runtime installation, without a native host executable.
	ApplicationTypePortable ApplicationType = "portable"
	// ApplicationTypeStandalone publishes self-contained output targeting a
	// specific runtime identifier.
	ApplicationTypeStandalone ApplicationType = "standalone"
)

// NormalizeApplicationType canonicalizes user input (case-insensitive) into a typed value, returning empty string for unknown.
func NormalizeApplicationType(raw string) ApplicationType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(ApplicationTypePortable):
		return ApplicationTypePortable
	case string(ApplicationTypeStandalone):
		return ApplicationTypeStandalone
	default:
		return ""
	}
}

// RuntimeArchitecture names the processor architecture a standalone publish targets.
type RuntimeArchitecture string

const (
	RuntimeArchitectureX64   RuntimeArchitecture = "x64"
	RuntimeArchitectureX86   RuntimeArchitecture = "x86"
	RuntimeArchitectureArm64 RuntimeArchitecture = "arm64"
)

// NormalizeRuntimeArchitecture canonicalizes user input (case-insensitive) into a typed value, returning empty string for unknown.
func NormalizeRuntimeArchitecture(raw string) RuntimeArchitecture {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(RuntimeArchitectureX64):
		return RuntimeArchitectureX64
	case string(RuntimeArchitectureX86):
		return RuntimeArchitectureX86
	case string(RuntimeArchitectureArm64):
		return RuntimeArchitectureArm64
	default:
		return ""
	}
}

// DeploymentParameters describes one requested publish. The zero value of
// ApplicationType behaves as portable and the zero value of
// RuntimeArchitecture behaves as x64.
type DeploymentParameters struct {
	// ApplicationPath is the application source directory the publish runs in.
	ApplicationPath string
	// TargetFramework names the framework moniker to publish for. Required.
	TargetFramework string
	// Configuration is the build configuration (e.g. Debug, Release). When
	// blank the tool's default applies and the blank value keys the cache.
	Configuration string

	ApplicationType     ApplicationType
	RuntimeArchitecture RuntimeArchitecture

	// AdditionalPublishArgs are appended verbatim to the publish argument list.
	AdditionalPublishArgs []string

	// PublishEnvironment entries override the child process environment for a
	// direct Publisher run. The cache rejects requests that set it: output
	// produced under custom environments must not be shared.
	PublishEnvironment map[string]string

	// PublishedRootOverride points at output the caller published ahead of
	// time. The cache rejects requests that set it: the cache must build and
	// own every master it hands copies of.
	PublishedRootOverride string

	// RestoreOnPublish lets a direct publish restore packages first. The
	// cache rejects requests that set it; cached builds always publish with
	// restore disabled.
	RestoreOnPublish bool
}
