package toolkit

import (
	"errors"
	"os"
	"strings"
	"testing"
)

// testLayout returns a layout rooted in a fresh temp dir with the given
// versions pre-installed as directories.
func testLayout(t *testing.T, versions ...string) Layout {
	t.Helper()
	layout := Layout{
		InstallRoot: t.TempDir(),
		LinkName:    "cuda",
		BackupName:  "cuda_backup",
	}
	for _, v := range versions {
		if err := os.Mkdir(layout.VersionDir(v), 0755); err != nil {
			t.Fatal(err)
		}
	}
	return layout
}

func mustReadlink(t *testing.T, path string) string {
	t.Helper()
	target, err := os.Readlink(path)
	if err != nil {
		t.Fatalf("Readlink(%s): %v", path, err)
	}
	return target
}

func TestSwitchFreshLink(t *testing.T) {
	layout := testLayout(t, "12.1")
	s := NewSwitcher(layout, DirectAdmin{})

	result, err := s.Switch("12.1", SwitchOptions{})
	if err != nil {
		t.Fatalf("Switch failed: %v", err)
	}

	if got := mustReadlink(t, layout.LinkPath()); got != layout.VersionDir("12.1") {
		t.Errorf("link target = %q, want %q", got, layout.VersionDir("12.1"))
	}
	if result.BackedUp {
		t.Error("expected no backup when no prior link exists")
	}
	if _, err := os.Lstat(layout.BackupPath()); !os.IsNotExist(err) {
		t.Error("backup path should not exist after a fresh switch")
	}
}

func TestSwitchReplacesExistingLink(t *testing.T) {
	layout := testLayout(t, "11.8", "12.1")
	s := NewSwitcher(layout, DirectAdmin{})

	if _, err := s.Switch("11.8", SwitchOptions{}); err != nil {
		t.Fatalf("first Switch failed: %v", err)
	}
	result, err := s.Switch("12.1", SwitchOptions{})
	if err != nil {
		t.Fatalf("second Switch failed: %v", err)
	}

	if got := mustReadlink(t, layout.LinkPath()); got != layout.VersionDir("12.1") {
		t.Errorf("link target = %q, want %q", got, layout.VersionDir("12.1"))
	}
	if !result.BackedUp {
		t.Fatal("expected the previous link to be backed up")
	}
	if got := mustReadlink(t, layout.BackupPath()); got != layout.VersionDir("11.8") {
		t.Errorf("backup target = %q, want %q", got, layout.VersionDir("11.8"))
	}
	if result.PreviousTarget != layout.VersionDir("11.8") {
		t.Errorf("PreviousTarget = %q, want %q", result.PreviousTarget, layout.VersionDir("11.8"))
	}
}

func TestSwitchBackupReflectsImmediatelyPriorLink(t *testing.T) {
	layout := testLayout(t, "11.8", "12.1", "12.4")
	s := NewSwitcher(layout, DirectAdmin{})

	for _, v := range []string{"11.8", "12.1", "12.4"} {
		if _, err := s.Switch(v, SwitchOptions{}); err != nil {
			t.Fatalf("Switch(%s) failed: %v", v, err)
		}
	}

	// After switching 11.8 -> 12.1 -> 12.4, the backup must point at 12.1,
	// not at the original 11.8.
	if got := mustReadlink(t, layout.BackupPath()); got != layout.VersionDir("12.1") {
		t.Errorf("backup target = %q, want %q", got, layout.VersionDir("12.1"))
	}
}

func TestSwitchMissingTarget(t *testing.T) {
	layout := testLayout(t)
	s := NewSwitcher(layout, DirectAdmin{})

	_, err := s.Switch("12.1", SwitchOptions{})
	var missing *MissingTargetError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingTargetError, got %v", err)
	}
	if missing.Version != "12.1" {
		t.Errorf("Version = %q, want %q", missing.Version, "12.1")
	}

	// No filesystem mutation on the failed precondition.
	if _, err := os.Lstat(layout.LinkPath()); !os.IsNotExist(err) {
		t.Error("link should not exist after a failed switch")
	}
}

func TestSwitchForceAllowsDanglingLink(t *testing.T) {
	layout := testLayout(t)
	s := NewSwitcher(layout, DirectAdmin{})

	if _, err := s.Switch("12.1", SwitchOptions{Force: true}); err != nil {
		t.Fatalf("forced Switch failed: %v", err)
	}
	if got := mustReadlink(t, layout.LinkPath()); got != layout.VersionDir("12.1") {
		t.Errorf("link target = %q, want %q", got, layout.VersionDir("12.1"))
	}
}

func TestSwitchConflictingPath(t *testing.T) {
	layout := testLayout(t, "12.1")
	// Occupy the link path with a real directory.
	if err := os.Mkdir(layout.LinkPath(), 0755); err != nil {
		t.Fatal(err)
	}

	s := NewSwitcher(layout, DirectAdmin{})
	_, err := s.Switch("12.1", SwitchOptions{})

	var conflict *ConflictingPathError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictingPathError, got %v", err)
	}
	if conflict.Path != layout.LinkPath() {
		t.Errorf("Path = %q, want %q", conflict.Path, layout.LinkPath())
	}

	// The conflicting directory must be left alone.
	info, statErr := os.Lstat(layout.LinkPath())
	if statErr != nil || !info.IsDir() {
		t.Error("conflicting directory should be untouched")
	}
}

// recordingAdmin records mutations without touching the filesystem.
type recordingAdmin struct {
	ops []string
}

func (a *recordingAdmin) Rename(oldPath, newPath string) error {
	a.ops = append(a.ops, "rename "+oldPath+" "+newPath)
	return nil
}

func (a *recordingAdmin) Symlink(target, linkPath string) error {
	a.ops = append(a.ops, "symlink "+target+" "+linkPath)
	return nil
}

func (a *recordingAdmin) Remove(path string) error {
	a.ops = append(a.ops, "remove "+path)
	return nil
}

func TestSwitchOperationOrder(t *testing.T) {
	layout := testLayout(t, "12.1")
	// Pre-existing link so the backup path is exercised.
	if err := os.Symlink(layout.VersionDir("12.1"), layout.LinkPath()); err != nil {
		t.Fatal(err)
	}

	admin := &recordingAdmin{}
	s := NewSwitcher(layout, admin)
	if _, err := s.Switch("12.1", SwitchOptions{}); err != nil {
		t.Fatalf("Switch failed: %v", err)
	}

	want := []string{
		"remove " + layout.BackupPath(),
		"rename " + layout.LinkPath() + " " + layout.BackupPath(),
		"symlink " + layout.VersionDir("12.1") + " " + layout.LinkPath(),
	}
	if len(admin.ops) != len(want) {
		t.Fatalf("ops = %v, want %v", admin.ops, want)
	}
	for i := range want {
		if admin.ops[i] != want[i] {
			t.Errorf("op[%d] = %q, want %q", i, admin.ops[i], want[i])
		}
	}
}

type failingAdmin struct {
	recordingAdmin
	failSymlink bool
}

func (a *failingAdmin) Symlink(target, linkPath string) error {
	if a.failSymlink {
		return os.ErrPermission
	}
	return a.recordingAdmin.Symlink(target, linkPath)
}

func TestSwitchReportsBackupOnLinkFailure(t *testing.T) {
	layout := testLayout(t, "12.1")
	if err := os.Symlink(layout.VersionDir("12.1"), layout.LinkPath()); err != nil {
		t.Fatal(err)
	}

	admin := &failingAdmin{failSymlink: true}
	s := NewSwitcher(layout, admin)
	_, err := s.Switch("12.1", SwitchOptions{})
	if err == nil {
		t.Fatal("expected an error when link creation fails")
	}
	// The error must tell the user where the previous link went.
	if want := layout.BackupPath(); !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not mention backup path %q", err, want)
	}
}
