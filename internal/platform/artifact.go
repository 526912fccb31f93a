package platform

import (
	"strings"
)

// WindowsExt is appended to the artifact name for Windows builds.
const WindowsExt = ".exe"

// HasBuildPrefix reports whether name follows the build directory naming
// convention, e.g. "build-linux-amd64" for prefix "build-".
func HasBuildPrefix(name, prefix string) bool {
	return strings.HasPrefix(name, prefix)
}

// ID returns the platform identifier encoded in a build directory name:
// "build-windows-amd64" → "windows-amd64".
func ID(dirName, prefix string) string {
	return strings.TrimPrefix(dirName, prefix)
}

// IsWindows reports whether the build directory targets Windows. The check is
// a plain substring match on marker, so "build-windows-arm64" and
// "build-mingw-windows" both qualify.
func IsWindows(dirName, marker string) bool {
	return marker != "" && strings.Contains(dirName, marker)
}

// ArtifactName returns the executable filename expected inside a build
// directory: base for most platforms, base+".exe" for Windows builds.
func ArtifactName(dirName, base, marker string) string {
	if IsWindows(dirName, marker) {
		return base + WindowsExt
	}
	return base
}
