package cli

import (
	"os"

	"github.com/cudax-labs/cudax/internal/branding"
	"github.com/cudax-labs/cudax/internal/config"
	"github.com/cudax-labs/cudax/internal/toolkit"
	"github.com/cudax-labs/cudax/internal/updater"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` manages which CUDA toolkit the /usr/local/cuda symlink points at,
and the PATH/LD_LIBRARY_PATH entries a shell needs to use it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()

		// Skip the update banner for commands whose output is consumed by
		// machines (env is eval'd) or that manage update state themselves.
		name := cmd.Name()
		if name == "update" || name == "env" || name == "version" {
			return
		}

		// Non-blocking banner from cached version check.
		newUpdater().CheckAndPrintBanner(os.Stderr, config.Dir())
	},
}

// newUpdater builds an Updater for the running binary, pointed at the
// configured GitHub API mirror when one is set.
func newUpdater() *updater.Updater {
	var opts []updater.Option
	if mirror := config.Get(config.KeyMirror); mirror != "" {
		opts = append(opts, updater.WithAPIBase(mirror))
	}
	return updater.New(buildVersion, opts...)
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}

// layoutFromConfig builds the toolkit layout from the loaded configuration.
func layoutFromConfig() toolkit.Layout {
	return toolkit.Layout{
		InstallRoot: config.Get(config.KeyInstallRoot),
		LinkName:    config.Get(config.KeyLinkName),
		BackupName:  config.Get(config.KeyBackupName),
	}
}
