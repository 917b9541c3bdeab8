// Package buildinfo holds the version stamp of the radioguide binary.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/radioguide/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/radioguide/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/radioguide/pkg/buildinfo.Date=$(date -u +%Y-%m-%d)" ./cmd/radioguide
package buildinfo

import "fmt"

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"

	// Commit is the git revision the binary was built from.
	Commit = "none"

	// Date is the build date.
	Date = "unknown"
)

// String returns the build stamp on one line, e.g. "v0.3.0 (abc1234, 2025-08-01)".
func String() string {
	return fmt.Sprintf("%s (%s, %s)", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\n", String())
}
