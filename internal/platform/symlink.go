package platform

import (
	"os"
)

// CreateSymlink creates a symbolic link at link pointing to target.
// The target is not required to exist; callers decide whether a dangling
// link is acceptable.
func CreateSymlink(target, link string) error {
	return os.Symlink(target, link)
}

// RemoveSymlink removes a symlink. It is a no-op if the path does not exist.
func RemoveSymlink(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// ReadSymlinkTarget returns the target of the symlink at path.
func ReadSymlinkTarget(path string) (string, error) {
	return os.Readlink(path)
}

// IsSymlink reports whether path exists and is a symbolic link.
// The second return value reports whether path exists at all, so callers
// can distinguish "absent" from "present but a regular file or directory".
func IsSymlink(path string) (isLink bool, exists bool, err error) {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return info.Mode()&os.ModeSymlink != 0, true, nil
}
