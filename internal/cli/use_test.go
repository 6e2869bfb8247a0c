package cli

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/cudax-labs/cudax/internal/branding"
	"github.com/cudax-labs/cudax/internal/state"
	"github.com/cudax-labs/cudax/internal/toolkit"
)

func testLayout(t *testing.T, versions ...string) toolkit.Layout {
	t.Helper()
	layout := toolkit.Layout{
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

func TestUseWrongArgCountFailsWithUsage(t *testing.T) {
	t.Setenv("CUDAX_HOME", t.TempDir())
	layout := testLayout(t, "12.1")

	for _, args := range [][]string{
		{"use"},
		{"use", "12.1", "12.4"},
	} {
		rootCmd.SetArgs(args)
		rootCmd.SetOut(io.Discard)
		rootCmd.SetErr(io.Discard)

		err := rootCmd.Execute()
		if err == nil {
			t.Fatalf("Execute(%v) should fail", args)
		}
		for _, want := range []string{"usage:", branding.CLIName() + " use", "12.1"} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("error %q should contain %q", err, want)
			}
		}
		// A rejected invocation must not touch the install root.
		if _, err := os.Lstat(layout.LinkPath()); !os.IsNotExist(err) {
			t.Errorf("link %s should not exist after a usage error", layout.LinkPath())
		}
		if _, err := os.Lstat(layout.BackupPath()); !os.IsNotExist(err) {
			t.Errorf("backup %s should not exist after a usage error", layout.BackupPath())
		}
	}
}

func TestResolveVersionArgVerbatim(t *testing.T) {
	layout := testLayout(t)

	got, err := resolveVersionArg("12.1", layout)
	if err != nil {
		t.Fatalf("resolveVersionArg failed: %v", err)
	}
	if got != "12.1" {
		t.Errorf("got %q, want %q", got, "12.1")
	}
}

func TestResolveVersionArgLatest(t *testing.T) {
	layout := testLayout(t, "11.8", "12.4", "12.1")

	got, err := resolveVersionArg("latest", layout)
	if err != nil {
		t.Fatalf("resolveVersionArg failed: %v", err)
	}
	if got != "12.4" {
		t.Errorf("got %q, want %q", got, "12.4")
	}
}

func TestResolveVersionArgLatestNoInstalls(t *testing.T) {
	layout := testLayout(t)
	if _, err := resolveVersionArg("latest", layout); err == nil {
		t.Fatal("expected an error with no installed toolkits")
	}
}

func TestResolveVersionArgPrevious(t *testing.T) {
	t.Setenv("CUDAX_HOME", t.TempDir())
	layout := testLayout(t)

	// Nothing recorded yet.
	if _, err := resolveVersionArg("-", layout); err == nil {
		t.Fatal("expected an error with no previous version")
	}

	for _, v := range []string{"11.8", "12.1"} {
		if err := state.RecordSwitch(v); err != nil {
			t.Fatal(err)
		}
	}

	got, err := resolveVersionArg("-", layout)
	if err != nil {
		t.Fatalf("resolveVersionArg failed: %v", err)
	}
	if got != "11.8" {
		t.Errorf("got %q, want %q", got, "11.8")
	}
}
