package probe

import (
	"os"

	"github.com/spf13/cobra"

	"yt2t/cmd/yt2t/cmd/cmdutil"
	"yt2t/internal/app"
)

// Cmd represents the probe command
var Cmd = &cobra.Command{
	Use:   "probe <url>",
	Short: "Print a video's metadata as JSON without downloading it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := cmdutil.LoadSettings()
		if err != nil {
			return err
		}

		e, cleanup, err := app.InitializeExtractor(cmd.Context(), settings)
		if err != nil {
			return err
		}
		defer cleanup()

		meta, err := e.Probe(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return cmdutil.PrintJSON(os.Stdout, meta)
	},
}
