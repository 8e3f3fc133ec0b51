package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"yt2t/internal/api/server"
)

// Cmd represents the version command
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of yt2t",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), server.Version)
		return nil
	},
}
