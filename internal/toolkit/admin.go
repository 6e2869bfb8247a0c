package toolkit

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/cudax-labs/cudax/internal/platform"
)

// Admin is the filesystem capability the switcher mutates through. The
// production implementations operate on the real filesystem (directly or via
// sudo); tests substitute a fake.
type Admin interface {
	// Rename moves oldPath to newPath, replacing newPath if it exists.
	Rename(oldPath, newPath string) error
	// Symlink creates a symbolic link at linkPath pointing to target.
	Symlink(target, linkPath string) error
	// Remove deletes path. Removing a path that does not exist is not an error.
	Remove(path string) error
}

// Sudo policy values accepted by NewAdmin.
const (
	SudoNever  = "never"
	SudoAuto   = "auto"
	SudoAlways = "always"
)

// NewAdmin returns an Admin for the given sudo policy:
//
//	never  — direct syscalls only
//	always — every mutation shells out to sudo
//	auto   — direct first, retry through sudo on permission errors
//
// Unknown policies fall back to auto.
func NewAdmin(policy string) Admin {
	switch policy {
	case SudoNever:
		return DirectAdmin{}
	case SudoAlways:
		return SudoAdmin{}
	default:
		return escalatingAdmin{direct: DirectAdmin{}, sudo: SudoAdmin{}}
	}
}

// DirectAdmin performs mutations with ordinary syscalls, in the invoking
// user's own privilege.
type DirectAdmin struct{}

func (DirectAdmin) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

func (DirectAdmin) Symlink(target, linkPath string) error {
	return platform.CreateSymlink(target, linkPath)
}

func (DirectAdmin) Remove(path string) error {
	return platform.RemoveSymlink(path)
}

// SudoAdmin performs mutations by shelling out to sudo, for link paths the
// invoking user cannot write (the usual case for /usr/local).
type SudoAdmin struct{}

func (SudoAdmin) Rename(oldPath, newPath string) error {
	return runSudo("mv", "-T", oldPath, newPath)
}

func (SudoAdmin) Symlink(target, linkPath string) error {
	return runSudo("ln", "-sfn", target, linkPath)
}

func (SudoAdmin) Remove(path string) error {
	return runSudo("rm", "-f", path)
}

func runSudo(args ...string) error {
	cmd := exec.Command("sudo", args...)
	// sudo may need to prompt for a password.
	cmd.Stdin = os.Stdin
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("sudo %s: %s: %w", args[0], msg, err)
		}
		return fmt.Errorf("sudo %s: %w", args[0], err)
	}
	return nil
}

// escalatingAdmin tries the direct path first and retries through sudo when
// the kernel says no.
type escalatingAdmin struct {
	direct Admin
	sudo   Admin
}

func (a escalatingAdmin) Rename(oldPath, newPath string) error {
	err := a.direct.Rename(oldPath, newPath)
	if needsEscalation(err) {
		return a.sudo.Rename(oldPath, newPath)
	}
	return err
}

func (a escalatingAdmin) Symlink(target, linkPath string) error {
	err := a.direct.Symlink(target, linkPath)
	if needsEscalation(err) {
		return a.sudo.Symlink(target, linkPath)
	}
	return err
}

func (a escalatingAdmin) Remove(path string) error {
	err := a.direct.Remove(path)
	if needsEscalation(err) {
		return a.sudo.Remove(path)
	}
	return err
}

func needsEscalation(err error) bool {
	return err != nil && errors.Is(err, os.ErrPermission)
}
