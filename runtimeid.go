package appstager

import "fmt"

// runtimeIdentifier maps a host OS and requested architecture onto the
// publish tool's runtime identifier. Windows keeps the historical win7
// prefix, which the tooling resolves for every newer Windows version.
func runtimeIdentifier(goos string, arch RuntimeArchitecture) (string, error) {
	a := NormalizeRuntimeArchitecture(string(arch))
	if a == "" {
		a = RuntimeArchitectureX64
	}
	switch goos {
	case "windows":
		return "win7-" + string(a), nil
	case "linux":
		return "linux-" + string(a), nil
	case "darwin":
		return "osx-" + string(a), nil
	default:
		return "", fmt.Errorf("%w: no runtime identifier for %s", ErrUnsupportedPlatform, goos)
	}
}
