// Package version carries build metadata stamped at link time:
//
//	go build -ldflags "-X github.com/alertconv/alertconv/internal/version.GitVersion=v1.2.0 \
//	  -X github.com/alertconv/alertconv/internal/version.GitCommit=$(git rev-parse HEAD)"
package version

import "fmt"

var (
	// GitVersion is the semantic version of the build.
	GitVersion = "dev"
	// GitCommit is the git sha1.
	GitCommit = ""
)

// Version is the build metadata of the binary.
type Version struct {
	SemVer    string
	GitCommit string
}

// Get returns the stamped build metadata.
func Get() Version {
	return Version{SemVer: GitVersion, GitCommit: GitCommit}
}

func (v Version) String() string {
	if v.GitCommit == "" {
		return v.SemVer
	}
	return fmt.Sprintf("%s (%s)", v.SemVer, v.GitCommit)
}
