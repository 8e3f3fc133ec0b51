package transcribe

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"yt2t/cmd/yt2t/cmd/cmdutil"
	"yt2t/internal/api/v1/dto"
	"yt2t/internal/app"
)

var (
	language   string
	timestamps bool
)

func init() {
	Cmd.Flags().StringVarP(&language, "language", "l", "", "spoken language, or auto (default DEFAULT_LANGUAGE)")
	Cmd.Flags().BoolVarP(&timestamps, "timestamps", "t", false, "print timed segments as JSON instead of plain text")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe <file>",
	Short: "Transcribe a local audio file with the configured STT engine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := cmdutil.LoadSettings()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if settings.STT.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, settings.STT.Timeout)
			defer cancel()
		}

		m, cleanup, err := app.InitializeModel(ctx, settings)
		if err != nil {
			return err
		}
		defer cleanup()

		if !timestamps {
			text, err := m.Transcribe(ctx, args[0], language)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, text)
			return nil
		}

		segs, err := m.TranscribeWithTimestamps(ctx, args[0], language)
		if err != nil {
			return err
		}
		return cmdutil.PrintJSON(os.Stdout, dto.TimestampsResponse{Segments: segs})
	},
}
