// Package version holds build metadata for the kickstart binary.
//
// Values are injected at build time via -ldflags, for example:
//
//	go build -ldflags "-X github.com/tacogips/kickstart/internal/version.GitCommit=$(git rev-parse --short HEAD)"
//
// Without an injected Version the embedded VERSION file is used.
package version

import (
	_ "embed"
	"fmt"
	"runtime"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// These variables are set via -ldflags at build time.
var (
	// Version overrides the embedded VERSION file when set.
	Version = ""
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"
	// BuildDate is the UTC timestamp of the build.
	BuildDate = "unknown"
)

// Short returns the version number.
func Short() string {
	if Version != "" {
		return Version
	}
	return strings.TrimSpace(embeddedVersion)
}

// Info contains build metadata.
type Info struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// Get returns the build metadata of the running binary.
func Get() Info {
	return Info{
		Version:   Short(),
		GoVersion: runtime.Version(),
		Commit:    GitCommit,
		BuildDate: BuildDate,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// String formats the metadata one field per line.
func (i Info) String() string {
	return fmt.Sprintf("kickstart version %s\nBuilt with: %s\nCommit: %s\nBuild date: %s\nOS/Arch: %s/%s",
		i.Version, i.GoVersion, i.Commit, i.BuildDate, i.OS, i.Arch)
}
