package update

import (
	"fmt"
	"runtime"

	"github.com/hashicorp/go-version"
	"github.com/dbschema-go/dbschema/cli/internal/ui"
)

// CheckForUpdates compares currentVersion against the latest known
// release and prints a notice when one is available. It is invoked by
// `dbschema version --check-update`.
func CheckForUpdates(currentVersion string) error {
	current, err := version.NewVersion(currentVersion)
	if err != nil {
		return fmt.Errorf("invalid version format: %w", err)
	}

	// TODO: fetch latestVersionStr from the GitHub releases API instead
	// of hardcoding it.
	latestVersionStr := "0.1.0"
	latest, err := version.NewVersion(latestVersionStr)
	if err != nil {
		return fmt.Errorf("invalid latest version format: %w", err)
	}

	if current.LessThan(latest) {
		ui.PrintWarning("A new version is available!")
		fmt.Printf("Current version: %s\n", currentVersion)
		fmt.Printf("Latest version:  %s\n", latestVersionStr)
		fmt.Printf("\nUpdate with: go install github.com/dbschema-go/dbschema/cli@latest\n")
		return nil
	}

	return nil
}

// GetDownloadURL returns the download URL for the current platform
func GetDownloadURL(version string) string {
	os := runtime.GOOS
	arch := runtime.GOARCH

	// Construct download URL based on platform
	// This is a placeholder - adjust based on your release structure
	return fmt.Sprintf("https://github.com/dbschema-go/dbschema/releases/download/v%s/dbschema-%s-%s", version, os, arch)
}

