package toolkit

import "path/filepath"

// Layout describes where toolkit installs and the active link live on disk.
// The zero value is not useful; use DefaultLayout or build one from config.
type Layout struct {
	// InstallRoot is the directory holding versioned installs (/usr/local).
	InstallRoot string
	// LinkName is the name of the active link under InstallRoot (cuda).
	LinkName string
	// BackupName is the name the previous link is renamed to (cuda_backup).
	BackupName string
}

// versionDirSeparator joins the link name and a version: cuda-12.1.
const versionDirSeparator = "-"

// DefaultLayout returns the conventional /usr/local/cuda layout.
func DefaultLayout() Layout {
	return Layout{
		InstallRoot: "/usr/local",
		LinkName:    "cuda",
		BackupName:  "cuda_backup",
	}
}

// LinkPath returns the path of the active toolkit link (/usr/local/cuda).
func (l Layout) LinkPath() string {
	return filepath.Join(l.InstallRoot, l.LinkName)
}

// BackupPath returns the path the previous link is renamed to
// (/usr/local/cuda_backup).
func (l Layout) BackupPath() string {
	return filepath.Join(l.InstallRoot, l.BackupName)
}

// VersionDir returns the install directory for a version
// (/usr/local/cuda-12.1).
func (l Layout) VersionDir(version string) string {
	return filepath.Join(l.InstallRoot, l.LinkName+versionDirSeparator+version)
}

// VersionDirPrefix returns the directory-name prefix shared by all versioned
// installs (cuda-). Used when scanning the install root.
func (l Layout) VersionDirPrefix() string {
	return l.LinkName + versionDirSeparator
}

// BinDir returns the executable directory behind the active link
// (/usr/local/cuda/bin).
func (l Layout) BinDir() string {
	return filepath.Join(l.LinkPath(), "bin")
}

// LibDir returns the dynamic-library directory behind the active link
// (/usr/local/cuda/lib64).
func (l Layout) LibDir() string {
	return filepath.Join(l.LinkPath(), "lib64")
}

// CompilerPath returns the path of nvcc behind the active link.
func (l Layout) CompilerPath() string {
	return filepath.Join(l.BinDir(), "nvcc")
}
