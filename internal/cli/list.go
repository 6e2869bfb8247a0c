package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/cudax-labs/cudax/internal/toolkit"
	"github.com/spf13/cobra"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List installed CUDA toolkits",
	Long:    `List the versioned CUDA install directories under the install root, newest first.`,
	RunE:    runList,
}

func runList(cmd *cobra.Command, args []string) error {
	layout := layoutFromConfig()

	installs, err := toolkit.Discover(layout)
	if err != nil {
		return err
	}

	if listJSON {
		out, err := json.MarshalIndent(installs, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling toolkit list: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	if len(installs) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No CUDA toolkits found under %s.\n", layout.InstallRoot)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tPATH\t")
	for _, in := range installs {
		marker := ""
		if in.Active {
			marker = " (active)"
		}
		fmt.Fprintf(w, "%s%s\t%s\t\n", in.Version, marker, in.Path)
	}
	return w.Flush()
}
