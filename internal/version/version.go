package version

// Package version holds build-time metadata injected via -ldflags.
// When nothing is injected, helpers fall back to development defaults.

var (
	// Version is a SemVer tag like v1.2.3 for releases. Empty for dev builds.
	Version = ""
	// Commit is the short git SHA for the build.
	Commit = ""
	// Date is the UTC build timestamp in RFC3339 format.
	Date = ""
)

// String returns a compact human-readable version for display in the tray
// tooltip and the status API. Releases return Version; dev builds return
// "dev-<sha>" when a commit is known, otherwise "dev".
func String() string {
	if Version != "" {
		return Version
	}
	if Commit != "" {
		return "dev-" + Commit
	}
	return "dev"
}
