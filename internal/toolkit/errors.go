package toolkit

import "fmt"

// MissingTargetError indicates that the install directory for the requested
// version does not exist, so linking to it would create a dangling link.
type MissingTargetError struct {
	Version string
	Dir     string
}

func (e *MissingTargetError) Error() string {
	return fmt.Sprintf("CUDA %s is not installed: %s does not exist", e.Version, e.Dir)
}

// ConflictingPathError indicates that the link path is occupied by something
// other than a symlink (a real directory or file), which the switcher will
// not rename or overwrite.
type ConflictingPathError struct {
	Path string
}

func (e *ConflictingPathError) Error() string {
	return fmt.Sprintf("%s exists and is not a symlink; move it aside before switching", e.Path)
}
