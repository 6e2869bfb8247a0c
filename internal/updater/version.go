package updater

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// parseTag parses a release version, tolerating the "v" prefix GitHub
// release tags carry: "v0.4.0" and "0.4.0" name the same release.
func parseTag(tag string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(tag, "v"))
}

// IsUpdateAvailable reports whether the latest release tag names a newer
// version than the one this binary was built as.
func IsUpdateAvailable(current, latest string) (bool, error) {
	cv, err := parseTag(current)
	if err != nil {
		return false, fmt.Errorf("parsing current version %q: %w", current, err)
	}
	lv, err := parseTag(latest)
	if err != nil {
		return false, fmt.Errorf("parsing release tag %q: %w", latest, err)
	}
	return cv.LessThan(lv), nil
}
