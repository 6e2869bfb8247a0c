package cli

import (
	"fmt"

	"github.com/cudax-labs/cudax/internal/branding"
	"github.com/spf13/cobra"
)

var envShell string

func init() {
	envCmd.Flags().StringVar(&envShell, "shell", "bash", "Shell syntax to emit (bash, zsh, fish)")
	rootCmd.AddCommand(envCmd)
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print shell exports for the active toolkit",
	Long: `Print the statements that prepend the active toolkit's bin and lib64
directories to PATH and LD_LIBRARY_PATH. A child process cannot modify its
parent shell, so apply them with eval:

  eval "$(` + branding.CLIName() + ` env)"
  ` + branding.CLIName() + ` env --shell fish | source`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := layoutFromConfig().SearchPaths()
		for _, line := range paths.ExportLines(envShell) {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}
