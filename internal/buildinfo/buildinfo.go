// Package buildinfo carries the version stamped in at link time:
//
//	-ldflags "-X segclock/internal/buildinfo.Version=v1.2.0 -X segclock/internal/buildinfo.Commit=$(git rev-parse --short HEAD)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns a compact build identifier for the window title and the
// start banner.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// String is the full version line printed by -version.
func String() string {
	return fmt.Sprintf("segclock %s (commit %s, built %s)", Version, Commit, Date)
}
