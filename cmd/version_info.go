package cmd

import domain "github.com/inference-gateway/toolgate/internal/domain"

// GetVersionInfo returns the build-time version information
func GetVersionInfo() domain.VersionInfo {
	return domain.VersionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}
