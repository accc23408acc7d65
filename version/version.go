// Package version holds the version of this application, so that the
// banner and any future consumers agree on it.
package version

import "fmt"

var (
	// version is populated with our release tag at build time, via
	// -ldflags "-X github.com/skx/cpmprintf/version.version=..."
	version = "unreleased"
)

// GetVersionBanner returns a banner which is suitable for printing, to show our name,
// version, and homepage link.
func GetVersionBanner() string {
	return fmt.Sprintf("cpmprintf %s\n%s\n", version, "https://github.com/skx/cpmprintf/")
}

// GetVersionString returns our version number as a string.
func GetVersionString() string {
	return version
}
