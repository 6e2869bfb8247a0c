package toolkit

import (
	"fmt"
	"os"
	"strings"
)

// Environment variable names the toolkit extends.
const (
	EnvPath           = "PATH"
	EnvLibraryPath    = "LD_LIBRARY_PATH"
	pathListSeparator = string(os.PathListSeparator)
)

// SearchPaths holds the directories a shell must know about to use the
// active toolkit. It is a plain value: nothing here mutates process state,
// so callers decide where the change lands (their own environment, an eval
// snippet, a subprocess).
type SearchPaths struct {
	// Bin is prepended to PATH.
	Bin string
	// Lib is prepended to LD_LIBRARY_PATH.
	Lib string
}

// SearchPaths returns the bin/lib64 directories behind the active link.
func (l Layout) SearchPaths() SearchPaths {
	return SearchPaths{Bin: l.BinDir(), Lib: l.LibDir()}
}

// Prepend returns list with entry placed first. Existing entries are kept
// as-is, duplicates included; search-path semantics make the leading entry
// win regardless.
func Prepend(entry, list string) string {
	if list == "" {
		return entry
	}
	return entry + pathListSeparator + list
}

// Apply prepends the search paths to the current process's environment.
// This affects only this process and its children; the invoking shell is
// untouched (see ExportLines for that).
func (p SearchPaths) Apply() error {
	if err := os.Setenv(EnvPath, Prepend(p.Bin, os.Getenv(EnvPath))); err != nil {
		return fmt.Errorf("setting %s: %w", EnvPath, err)
	}
	if err := os.Setenv(EnvLibraryPath, Prepend(p.Lib, os.Getenv(EnvLibraryPath))); err != nil {
		return fmt.Errorf("setting %s: %w", EnvLibraryPath, err)
	}
	return nil
}

// ExportLines renders shell statements that prepend the search paths, for
// the user to eval in their interactive shell. Supported shells are "bash",
// "zsh" (identical output), and "fish"; anything else gets POSIX export
// syntax.
func (p SearchPaths) ExportLines(shell string) []string {
	if strings.EqualFold(shell, "fish") {
		return []string{
			fmt.Sprintf("set -gx %s %q $%s", EnvPath, p.Bin, EnvPath),
			fmt.Sprintf("set -gx %s %q $%s", EnvLibraryPath, p.Lib, EnvLibraryPath),
		}
	}
	return []string{
		fmt.Sprintf("export %s=%q:$%s", EnvPath, p.Bin, EnvPath),
		fmt.Sprintf("export %s=%q:$%s", EnvLibraryPath, p.Lib, EnvLibraryPath),
	}
}
