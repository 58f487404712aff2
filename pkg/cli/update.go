package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

const updateRepo = "Fepozopo/timemark"

// CheckForUpdates compares the running version against the latest GitHub
// release and, after confirmation, replaces the current executable in place.
func CheckForUpdates(version string) error {
	current, err := semver.ParseTolerant(version)
	if err != nil {
		return fmt.Errorf("parse current version %q: %w", version, err)
	}

	latest, found, err := selfupdate.DetectLatest(updateRepo)
	if err != nil {
		return fmt.Errorf("detect latest release: %w", err)
	}
	if !found || latest.Version.LTE(current) {
		fmt.Println("Current version is the latest.")
		return nil
	}

	fmt.Printf("New version %s available (current %s)\n", latest.Version, current)
	answer, err := PromptLine("Update now? (y/N): ")
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") {
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}
	fmt.Printf("Updated to %s. Restart to use the new version.\n", latest.Version)
	return nil
}
