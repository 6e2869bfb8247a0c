package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cudax-labs/cudax/internal/branding"
	"github.com/cudax-labs/cudax/internal/platform"
	"github.com/cudax-labs/cudax/internal/releases"
	"github.com/cudax-labs/cudax/internal/toolkit"
	"github.com/spf13/cobra"
)

var doctorCatalogFile string

func init() {
	doctorCmd.Flags().StringVar(&doctorCatalogFile, "catalog", "", "Validate against a custom release catalog file instead of the embedded one")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the CUDA toolkit setup",
	Long:  `Run diagnostic checks on the active link, the toolkit install, the shell environment, and driver compatibility.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		layout := layoutFromConfig()
		w := cmd.OutOrStdout()

		checkInstallRoot(w, layout)
		version := checkLink(w, layout)
		checkCompiler(w, layout)
		checkShellEnv(w, layout)
		checkDriver(cmd, w, version)

		return nil
	},
}

func checkInstallRoot(w io.Writer, layout toolkit.Layout) {
	fmt.Fprintln(w, "Install check:")

	if _, err := os.Stat(layout.InstallRoot); os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] install root %s does not exist\n", layout.InstallRoot)
		return
	}
	fmt.Fprintf(w, "  [ OK ] install root %s exists\n", layout.InstallRoot)

	installs, err := toolkit.Discover(layout)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] scanning installs: %v\n", err)
		return
	}
	if len(installs) == 0 {
		fmt.Fprintf(w, "  [WARN] no %s<version> directories found\n", layout.VersionDirPrefix())
		return
	}
	fmt.Fprintf(w, "  [ OK ] %d toolkit install(s) found\n", len(installs))
}

// checkLink validates the active symlink and returns the active version when
// one can be derived.
func checkLink(w io.Writer, layout toolkit.Layout) string {
	fmt.Fprintln(w, "Link check:")
	linkPath := layout.LinkPath()

	isLink, exists, err := platform.IsSymlink(linkPath)
	switch {
	case err != nil:
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", linkPath, err)
		return ""
	case !exists:
		fmt.Fprintf(w, "  [MISS] %s does not exist; run '%s use <version>'\n", linkPath, branding.CLIName())
		return ""
	case !isLink:
		fmt.Fprintf(w, "  [WARN] %s exists but is not a symlink; %s cannot manage it\n", linkPath, branding.CLIName())
		return ""
	}

	target, err := platform.ReadSymlinkTarget(linkPath)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] reading %s: %v\n", linkPath, err)
		return ""
	}

	resolved := target
	if !filepath.IsAbs(target) {
		resolved = filepath.Join(layout.InstallRoot, target)
	}
	if _, err := os.Stat(resolved); os.IsNotExist(err) {
		fmt.Fprintf(w, "  [WARN] %s -> %s (target does not exist, dangling link)\n", linkPath, target)
		return ""
	}
	fmt.Fprintf(w, "  [ OK ] %s -> %s\n", linkPath, target)

	version, ok := toolkit.ActiveVersion(layout)
	if !ok {
		fmt.Fprintf(w, "  [WARN] target does not follow the %s<version> naming convention\n", layout.VersionDirPrefix())
		return ""
	}
	return version
}

func checkCompiler(w io.Writer, layout toolkit.Layout) {
	fmt.Fprintln(w, "Compiler check:")
	nvccPath := layout.CompilerPath()

	info, err := os.Stat(nvccPath)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s not found\n", nvccPath)
		return
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", nvccPath, err)
		return
	}
	if info.Mode().Perm()&0111 == 0 {
		fmt.Fprintf(w, "  [WARN] %s is not executable\n", nvccPath)
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s is executable\n", nvccPath)
}

func checkShellEnv(w io.Writer, layout toolkit.Layout) {
	fmt.Fprintln(w, "Environment check:")
	paths := layout.SearchPaths()

	checkPathEntry(w, toolkit.EnvPath, paths.Bin)
	checkPathEntry(w, toolkit.EnvLibraryPath, paths.Lib)
}

func checkPathEntry(w io.Writer, envVar, dir string) {
	value := os.Getenv(envVar)
	for _, entry := range strings.Split(value, string(os.PathListSeparator)) {
		if entry == dir {
			fmt.Fprintf(w, "  [ OK ] %s contains %s\n", envVar, dir)
			return
		}
	}
	fmt.Fprintf(w, "  [MISS] %s does not contain %s; run 'eval \"$(%s env)\"'\n", envVar, dir, branding.CLIName())
}

func checkDriver(cmd *cobra.Command, w io.Writer, version string) {
	fmt.Fprintln(w, "Driver check:")

	var catalog *releases.Catalog
	var err error
	if doctorCatalogFile != "" {
		catalog, err = releases.LoadFile(doctorCatalogFile)
	} else {
		catalog, err = releases.Load()
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] loading release catalog: %v\n", err)
		return
	}

	driver, err := toolkit.DriverVersion(cmd.Context(), nil)
	if err != nil {
		fmt.Fprintf(w, "  [WARN] could not query driver: %v\n", err)
		return
	}
	fmt.Fprintf(w, "  [ OK ] driver version %s\n", driver)

	if version == "" {
		fmt.Fprintln(w, "  [WARN] no active toolkit version, skipping compatibility check")
		return
	}

	ok, known := catalog.DriverSatisfies(version, driver)
	switch {
	case !known:
		fmt.Fprintf(w, "  [WARN] CUDA %s not in the release catalog, compatibility unknown\n", version)
	case ok:
		required, _ := catalog.MinDriver(version)
		fmt.Fprintf(w, "  [ OK ] driver %s meets CUDA %s minimum (%s)\n", driver, version, required)
	default:
		required, _ := catalog.MinDriver(version)
		fmt.Fprintf(w, "  [WARN] driver %s is older than CUDA %s minimum (%s)\n", driver, version, required)
	}
}
