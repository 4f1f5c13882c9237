package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mailpluck/pluck-cli/internal/cliutil"
)

// Version is set at build time with -ldflags "-X github.com/mailpluck/pluck-cli/internal/cli.Version=..."
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pluck version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cliutil.GetOutput(cmd) == "json" {
			return cliutil.OutputJSON(cmd.OutOrStdout(), map[string]string{"version": Version})
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "pluck version %s\n", Version)
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
