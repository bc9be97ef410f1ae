package build

import "fmt"

// Set at link time, e.g.
//
//	go build -ldflags "-X github.com/rohmanhakim/wiki-content/internal/build.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// FullVersion returns the version string with commit hash appended.
// Format: "Version+Commit" (e.g., "1.0.0+abc123")
func FullVersion() string {
	return Version + "+" + Commit
}

// Describe returns the program name, full version and build time.
func Describe() string {
	return fmt.Sprintf("wiki-content %s (built %s)", FullVersion(), BuildTime)
}
