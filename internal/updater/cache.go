package updater

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	updateCheckFile = "update-check.json"
	// DefaultCacheMaxAge is how long a cached check stays fresh. One check a
	// day keeps the banner cheap without letting it go stale for weeks.
	DefaultCacheMaxAge = 24 * time.Hour
)

// VersionCache is the on-disk record of the last release check, read on
// startup so the banner never waits on the network.
type VersionCache struct {
	LatestVersion   string    `json:"latest_version"`
	CurrentVersion  string    `json:"current_version"`
	CheckedAt       time.Time `json:"checked_at"`
	UpdateAvailable bool      `json:"update_available"`
}

// Stale reports whether the cached check is older than maxAge. A nil cache
// (no check recorded yet) is stale.
func (c *VersionCache) Stale(maxAge time.Duration) bool {
	return c == nil || time.Since(c.CheckedAt) > maxAge
}

// LoadCache reads the cached release check from the config directory.
// A missing cache file is a nil cache, not an error.
func LoadCache(configDir string) (*VersionCache, error) {
	data, err := os.ReadFile(filepath.Join(configDir, updateCheckFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading update-check cache: %w", err)
	}

	var cache VersionCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("parsing update-check cache: %w", err)
	}
	return &cache, nil
}

// SaveCache writes the release-check record to the config directory,
// creating it if needed.
func SaveCache(configDir string, cache *VersionCache) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling update-check cache: %w", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, updateCheckFile), data, 0644); err != nil {
		return fmt.Errorf("writing update-check cache: %w", err)
	}
	return nil
}
