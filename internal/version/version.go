package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/macstage/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/macstage/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/macstage/internal/version.Date={{.Date}}
)

// String formats the build information for the version command.
func String() string {
	return "macstage " + Version + " (commit " + Commit + ", built " + Date + ")"
}
