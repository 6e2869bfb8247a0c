package cli

import (
	"fmt"

	"github.com/cudax-labs/cudax/internal/platform"
	"github.com/cudax-labs/cudax/internal/toolkit"
	"github.com/spf13/cobra"
)

var currentShort bool

func init() {
	currentCmd.Flags().BoolVar(&currentShort, "short", false, "Print the version number only")
	rootCmd.AddCommand(currentCmd)
}

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the active CUDA toolkit",
	RunE: func(cmd *cobra.Command, args []string) error {
		layout := layoutFromConfig()
		linkPath := layout.LinkPath()

		target, err := platform.ReadSymlinkTarget(linkPath)
		if err != nil {
			return fmt.Errorf("no active toolkit: %s is not a symlink", linkPath)
		}

		version, ok := toolkit.ActiveVersion(layout)

		if currentShort {
			if !ok {
				return fmt.Errorf("link target %s does not name a version", target)
			}
			fmt.Println(version)
			return nil
		}

		fmt.Printf("%s -> %s\n", linkPath, target)

		compiler := toolkit.NewCompiler(layout.CompilerPath())
		cv, err := compiler.Version(cmd.Context())
		if err != nil {
			fmt.Printf("Compiler not available: %v\n", err)
			return nil
		}
		if cv.Release != "" {
			fmt.Printf("Compiler release: %s\n", cv.Release)
		} else {
			fmt.Println(cv.Raw)
		}
		return nil
	},
}
