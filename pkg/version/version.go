// Package version provides build and version information for wikigen.
package version

import (
	"fmt"
	"runtime"
)

// Version is the current version, set via ldflags at build time:
// -X github.com/docsmiths/wikigen/pkg/version.Version=v1.2.3
var Version = "dev"

// Build information set via ldflags at build time.
var (
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date in RFC3339 format.
	Date = "unknown"
	// GoVersion is the Go version used to build the binary.
	GoVersion = runtime.Version()
)

// BuildInfo is structured version information for JSON output.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// Info returns the current build information.
func Info() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// String returns a single-line version string.
func (b BuildInfo) String() string {
	return fmt.Sprintf("wikigen %s (%s, %s, %s/%s)", b.Version, b.Commit, b.GoVersion, b.OS, b.Arch)
}
