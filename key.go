package appstager

import (
	"fmt"
	"strings"
)

// buildKey identifies a distinct publish configuration. Requests with equal
// keys share one master directory for the process lifetime. The key never
// includes the application path: a cache is bound to a single application.
type buildKey struct {
	framework     string
	configuration string
	appType       ApplicationType
	arch          RuntimeArchitecture
}

// keyFor derives the cache key from request parameters. Application type and
// architecture are normalized first so casing variants coalesce; blank or
// unrecognized values take the documented zero-value behavior (portable, x64),
// matching what the publisher will actually produce.
func keyFor(p DeploymentParameters) buildKey {
	k := buildKey{
		framework:     strings.TrimSpace(p.TargetFramework),
		configuration: strings.TrimSpace(p.Configuration),
		appType:       NormalizeApplicationType(string(p.ApplicationType)),
		arch:          NormalizeRuntimeArchitecture(string(p.RuntimeArchitecture)),
	}
	if k.appType == "" {
		k.appType = ApplicationTypePortable
	}
	if k.arch == "" {
		k.arch = RuntimeArchitectureX64
	}
	return k
}

// String renders the key for log fields. The rendering is human-readable,
// not injective: fields containing the separator run together.
func (k buildKey) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", k.framework, k.configuration, k.appType, k.arch)
}

// groupKey renders the key unambiguously for flight grouping. Each field is
// quoted, so a separator inside one field can never be read as a field
// boundary and two distinct keys can never share a group.
func (k buildKey) groupKey() string {
	return fmt.Sprintf("%q/%q/%q/%q", k.framework, k.configuration, string(k.appType), string(k.arch))
}
