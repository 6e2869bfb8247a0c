package toolkit

import (
	"fmt"
	"os"

	"github.com/cudax-labs/cudax/internal/platform"
)

// Switcher repoints the active toolkit link. All mutations flow through the
// injected Admin.
type Switcher struct {
	Layout Layout
	Admin  Admin
}

// NewSwitcher returns a Switcher over the given layout and admin capability.
func NewSwitcher(layout Layout, admin Admin) *Switcher {
	return &Switcher{Layout: layout, Admin: admin}
}

// SwitchOptions tune a single switch operation.
type SwitchOptions struct {
	// Force skips the target-directory existence check, allowing a dangling
	// link to be created for a toolkit that will be installed later.
	Force bool
}

// SwitchResult reports what a switch did.
type SwitchResult struct {
	// Version is the version string the link now names.
	Version string
	// Target is the install directory the link now points at.
	Target string
	// LinkPath is the path of the active link.
	LinkPath string
	// BackedUp is true when a previous link was renamed to the backup path.
	BackedUp bool
	// BackupPath is where the previous link went, when BackedUp is true.
	BackupPath string
	// PreviousTarget is what the link pointed at before the switch, when a
	// previous link existed.
	PreviousTarget string
}

// Switch repoints the active link at the install directory for version.
//
// An existing symlink at the link path is renamed to the backup path first,
// replacing any older backup, so the previous selection stays reachable. A
// non-symlink occupying the link path is never touched; that is a
// ConflictingPathError. The target install directory must exist unless
// opts.Force is set.
//
// There is no rollback: if link creation fails after the backup rename, the
// backup has already moved and the error reports the partial state.
func (s *Switcher) Switch(version string, opts SwitchOptions) (*SwitchResult, error) {
	linkPath := s.Layout.LinkPath()
	targetDir := s.Layout.VersionDir(version)

	if !opts.Force {
		if _, err := os.Stat(targetDir); os.IsNotExist(err) {
			return nil, &MissingTargetError{Version: version, Dir: targetDir}
		} else if err != nil {
			return nil, fmt.Errorf("checking %s: %w", targetDir, err)
		}
	}

	result := &SwitchResult{
		Version:  version,
		Target:   targetDir,
		LinkPath: linkPath,
	}

	isLink, exists, err := platform.IsSymlink(linkPath)
	if err != nil {
		return nil, fmt.Errorf("inspecting %s: %w", linkPath, err)
	}

	switch {
	case exists && !isLink:
		return nil, &ConflictingPathError{Path: linkPath}

	case exists:
		if prev, readErr := platform.ReadSymlinkTarget(linkPath); readErr == nil {
			result.PreviousTarget = prev
		}

		backupPath := s.Layout.BackupPath()
		// Clear any older backup so the rename lands cleanly even when the
		// backup path is itself a symlink.
		if err := s.Admin.Remove(backupPath); err != nil {
			return nil, fmt.Errorf("clearing old backup %s: %w", backupPath, err)
		}
		if err := s.Admin.Rename(linkPath, backupPath); err != nil {
			return nil, fmt.Errorf("backing up %s to %s: %w", linkPath, backupPath, err)
		}
		result.BackedUp = true
		result.BackupPath = backupPath
	}

	if err := s.Admin.Symlink(targetDir, linkPath); err != nil {
		if result.BackedUp {
			return nil, fmt.Errorf("creating link %s (previous link preserved at %s): %w",
				linkPath, result.BackupPath, err)
		}
		return nil, fmt.Errorf("creating link %s: %w", linkPath, err)
	}

	return result, nil
}
