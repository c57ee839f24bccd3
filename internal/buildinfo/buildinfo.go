// Package buildinfo carries version metadata stamped in with -ldflags:
//
//	-X github.com/abedrayen/Portfolio/internal/buildinfo.Version=v1.2.0
package buildinfo

import "fmt"

// Name is the program name used in titles and user agents.
const Name = "portfolio"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns a compact build identifier for UI/logging.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		if len(Commit) > 12 {
			return Commit[:12]
		}
		return Commit
	}
	return "dev"
}

// String returns the full version line.
func String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", Name, Version, Commit, Date)
}

// UserAgent identifies HTTP requests made by the program.
func UserAgent() string {
	return Name + "/" + Short()
}
