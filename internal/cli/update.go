package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/cudax-labs/cudax/internal/branding"
	"github.com/cudax-labs/cudax/internal/config"
	"github.com/cudax-labs/cudax/internal/updater"
	"github.com/spf13/cobra"
)

var updateCheck bool

func init() {
	updateCmd.Flags().BoolVar(&updateCheck, "check", false, "Only check for updates")
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check for a newer " + branding.CLIName() + " release",
	Long: `Check GitHub releases for a newer version. Because ` + branding.CLIName() + ` is usually
installed system-wide, it does not replace its own binary; it prints the
release URL and install instructions instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		u := newUpdater()

		fmt.Fprintln(os.Stderr, "Checking for updates...")
		release, err := u.CheckLatestVersion()
		if err != nil {
			return fmt.Errorf("checking latest version: %w", err)
		}

		available, err := updater.IsUpdateAvailable(buildVersion, release.Version)
		if err != nil {
			// Dev builds don't parse as semver; still show what's out there.
			fmt.Printf("Latest release: %s (%s)\n", release.Version, release.HTMLURL)
			return nil
		}

		// Refresh the banner cache while we have a fresh answer.
		_ = updater.SaveCache(config.Dir(), &updater.VersionCache{
			LatestVersion:   release.Version,
			CurrentVersion:  buildVersion,
			CheckedAt:       time.Now(),
			UpdateAvailable: available,
		})

		if !available {
			fmt.Printf("Already up to date (%s).\n", buildVersion)
			return nil
		}

		fmt.Printf("Update available: %s -> %s\n", buildVersion, release.Version)
		fmt.Printf("  %s\n", release.HTMLURL)
		if !updateCheck {
			fmt.Println("\nDownload the release for your platform and replace the installed binary.")
		}
		return nil
	},
}
