package toolkit

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cudax-labs/cudax/internal/platform"
)

// Installed describes one versioned toolkit install under the install root.
type Installed struct {
	// Version is the directory suffix, e.g. "12.1".
	Version string `json:"version"`
	// Path is the full install directory, e.g. "/usr/local/cuda-12.1".
	Path string `json:"path"`
	// Active is true when the active link currently points at this install.
	Active bool `json:"active"`
}

// Discover scans the install root for cuda-<version> directories and returns
// them sorted newest first. Directory suffixes that do not parse as versions
// are skipped. A missing install root yields an empty list, not an error.
func Discover(layout Layout) ([]Installed, error) {
	entries, err := os.ReadDir(layout.InstallRoot)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading install root %s: %w", layout.InstallRoot, err)
	}

	active, _ := ActiveVersion(layout)
	prefix := layout.VersionDirPrefix()

	var installs []Installed
	for _, e := range entries {
		if !e.IsDir() && e.Type()&os.ModeSymlink == 0 {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, prefix) || name == layout.LinkName {
			continue
		}
		version := strings.TrimPrefix(name, prefix)
		if _, err := semver.NewVersion(version); err != nil {
			continue
		}
		installs = append(installs, Installed{
			Version: version,
			Path:    filepath.Join(layout.InstallRoot, name),
			Active:  version == active,
		})
	}

	sort.Slice(installs, func(i, j int) bool {
		vi, _ := semver.NewVersion(installs[i].Version)
		vj, _ := semver.NewVersion(installs[j].Version)
		return vi.GreaterThan(vj)
	})

	return installs, nil
}

// Latest returns the newest installed version.
func Latest(layout Layout) (string, error) {
	installs, err := Discover(layout)
	if err != nil {
		return "", err
	}
	if len(installs) == 0 {
		return "", fmt.Errorf("no CUDA toolkits found under %s", layout.InstallRoot)
	}
	return installs[0].Version, nil
}

// ActiveVersion returns the version currently selected by the link, derived
// from the link target's directory name. The second return value is false
// when no link exists or the target does not follow the cuda-<version>
// naming convention.
func ActiveVersion(layout Layout) (string, bool) {
	target, err := platform.ReadSymlinkTarget(layout.LinkPath())
	if err != nil {
		return "", false
	}
	base := filepath.Base(target)
	prefix := layout.VersionDirPrefix()
	if !strings.HasPrefix(base, prefix) {
		return "", false
	}
	return strings.TrimPrefix(base, prefix), true
}
