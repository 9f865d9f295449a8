// Package version provides build-time version information.
package version

import "fmt"

// Set at build time:
//
//	go build -ldflags "-X github.com/javanstorm/lenv/internal/version.Version=0.2.0 \
//	                   -X github.com/javanstorm/lenv/internal/version.Commit=$(git rev-parse --short HEAD) \
//	                   -X github.com/javanstorm/lenv/internal/version.BuildDate=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/lenv
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String returns the one-line form used by lenv --version.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate)
}
