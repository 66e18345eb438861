package domain

// VersionInfo contains build-time version information
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}
