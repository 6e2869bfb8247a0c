package cli

import (
	"fmt"
	"os"

	"github.com/cudax-labs/cudax/internal/branding"
	"github.com/cudax-labs/cudax/internal/config"
	"github.com/cudax-labs/cudax/internal/state"
	"github.com/cudax-labs/cudax/internal/toolkit"
	"github.com/spf13/cobra"
)

var (
	useForce    bool
	useNoVerify bool
)

func init() {
	useCmd.Flags().BoolVar(&useForce, "force", false, "Link even if the target install directory does not exist")
	useCmd.Flags().BoolVar(&useNoVerify, "no-verify", false, "Skip running nvcc --version after switching")
	rootCmd.AddCommand(useCmd)
}

var useCmd = &cobra.Command{
	Use:   "use <cuda_version_number>",
	Short: "Switch the active CUDA toolkit",
	Long: `Repoint the active CUDA symlink at a versioned install directory. The
previous link is kept at the backup path so the prior selection stays
reachable. After switching, nvcc --version is run as a visual confirmation.

Example:
  ` + branding.CLIName() + ` use 12.1
  ` + branding.CLIName() + ` use latest
  ` + branding.CLIName() + ` use -          # switch back to the previous version`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: %[1]s use <cuda_version_number> (example: %[1]s use 12.1)", branding.CLIName())
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		layout := layoutFromConfig()

		version, err := resolveVersionArg(args[0], layout)
		if err != nil {
			return err
		}

		admin := toolkit.NewAdmin(config.Get(config.KeySudo))
		switcher := toolkit.NewSwitcher(layout, admin)

		result, err := switcher.Switch(version, toolkit.SwitchOptions{Force: useForce})
		if err != nil {
			return err
		}

		if result.BackedUp {
			fmt.Printf("Previous link saved to %s\n", result.BackupPath)
		}
		fmt.Printf("Symbolic link created for CUDA version %s\n", result.Version)

		if err := state.RecordSwitch(result.Version); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not record switch: %v\n", err)
		}

		// Prepend the new bin/lib64 dirs for this process so the verification
		// step resolves against the freshly switched toolkit.
		paths := layout.SearchPaths()
		if err := paths.Apply(); err != nil {
			return err
		}

		if !useNoVerify {
			compiler := toolkit.NewCompiler(layout.CompilerPath())
			cv, err := compiler.Version(cmd.Context())
			if err != nil {
				return fmt.Errorf("link created, but verification failed: %w", err)
			}
			fmt.Println(cv.Raw)
		}

		// A child process cannot change its parent shell's environment.
		fmt.Printf("\nTo update your current shell, run:\n  eval \"$(%s env)\"\n", branding.CLIName())
		return nil
	},
}

// resolveVersionArg maps the use argument to a concrete version: "latest"
// picks the newest installed toolkit, "-" the previously active one, and
// anything else is used verbatim.
func resolveVersionArg(arg string, layout toolkit.Layout) (string, error) {
	switch arg {
	case "latest":
		return toolkit.Latest(layout)
	case "-":
		s, err := state.Load()
		if err != nil {
			return "", err
		}
		if s.PreviousVersion == "" {
			return "", fmt.Errorf("no previous version recorded")
		}
		return s.PreviousVersion, nil
	default:
		return arg, nil
	}
}
