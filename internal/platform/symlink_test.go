package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateAndReadSymlink(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "cuda-12.1")
	if err := os.Mkdir(target, 0755); err != nil {
		t.Fatal(err)
	}

	link := filepath.Join(tmp, "cuda")
	if err := CreateSymlink(target, link); err != nil {
		t.Fatalf("CreateSymlink failed: %v", err)
	}

	got, err := ReadSymlinkTarget(link)
	if err != nil {
		t.Fatalf("ReadSymlinkTarget failed: %v", err)
	}
	if got != target {
		t.Errorf("target = %q, want %q", got, target)
	}
}

func TestCreateSymlinkDanglingTarget(t *testing.T) {
	tmp := t.TempDir()
	link := filepath.Join(tmp, "cuda")

	// Target does not exist; the link is still created.
	if err := CreateSymlink(filepath.Join(tmp, "cuda-99.9"), link); err != nil {
		t.Fatalf("CreateSymlink failed: %v", err)
	}
	if _, err := os.Lstat(link); err != nil {
		t.Fatalf("Lstat on dangling link: %v", err)
	}
}

func TestRemoveSymlink(t *testing.T) {
	tmp := t.TempDir()
	link := filepath.Join(tmp, "cuda")
	if err := CreateSymlink(tmp, link); err != nil {
		t.Fatal(err)
	}

	if err := RemoveSymlink(link); err != nil {
		t.Fatalf("RemoveSymlink failed: %v", err)
	}
	if _, err := os.Lstat(link); !os.IsNotExist(err) {
		t.Error("link should be gone")
	}

	// Removing again is not an error.
	if err := RemoveSymlink(link); err != nil {
		t.Errorf("RemoveSymlink on missing path: %v", err)
	}
}

func TestIsSymlink(t *testing.T) {
	tmp := t.TempDir()

	dir := filepath.Join(tmp, "realdir")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(tmp, "link")
	if err := os.Symlink(dir, link); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		path       string
		wantIsLink bool
		wantExists bool
	}{
		{"symlink", link, true, true},
		{"directory", dir, false, true},
		{"missing", filepath.Join(tmp, "nope"), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isLink, exists, err := IsSymlink(tt.path)
			if err != nil {
				t.Fatalf("IsSymlink failed: %v", err)
			}
			if isLink != tt.wantIsLink || exists != tt.wantExists {
				t.Errorf("IsSymlink = (%v, %v), want (%v, %v)", isLink, exists, tt.wantIsLink, tt.wantExists)
			}
		})
	}
}
