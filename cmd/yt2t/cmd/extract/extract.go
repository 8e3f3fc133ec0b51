package extract

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"yt2t/cmd/yt2t/cmd/cmdutil"
	"yt2t/internal/app"
	"yt2t/internal/app/model"
	"yt2t/internal/app/progress"
)

var (
	format       string
	sampleRate   int
	channels     int
	name         string
	showProgress bool
)

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", "", "output format, wav or mp3 (default DEFAULT_AUDIO_FORMAT)")
	Cmd.Flags().IntVarP(&sampleRate, "rate", "r", 0, "sample rate in Hz (default DEFAULT_AUDIO_SAMPLE_RATE)")
	Cmd.Flags().IntVarP(&channels, "channels", "c", 0, "channel count (default DEFAULT_AUDIO_CHANNELS)")
	Cmd.Flags().StringVarP(&name, "name", "n", "", "output file name (default <title>-<video id>-<rate>hz-<channels>ch)")
	Cmd.Flags().BoolVar(&showProgress, "progress", false, "show the stage bar even when stderr is not a terminal")
}

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract <url>",
	Short: "Extract the audio of one YouTube video",
	Long: `Extract the audio of one YouTube video into AUDIO_OUTPUT_DIR

- Downloads the best audio stream with yt-dlp
- Normalizes it with ffmpeg to the requested format, sample rate and channels
- Prints the result as JSON`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := cmdutil.LoadSettings()
		if err != nil {
			return err
		}

		ctx, stop := cmdutil.SignalContext(cmd.Context())
		defer stop()
		if settings.Extractor.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, settings.Extractor.Timeout)
			defer cancel()
		}

		e, cleanup, err := app.InitializeExtractor(ctx, settings)
		if err != nil {
			return err
		}
		defer cleanup()

		req := model.ExtractionRequest{
			SourceURL:  args[0],
			Format:     model.ParseAudioFormat(settings.Extractor.Format),
			SampleRate: settings.Extractor.SampleRate,
			Channels:   settings.Extractor.Channels,
			OutputName: name,
		}
		if format != "" {
			req.Format = model.ParseAudioFormat(format)
		}
		if sampleRate != 0 {
			req.SampleRate = sampleRate
		}
		if channels != 0 {
			req.Channels = channels
		}

		bars := progress.NewManager(progress.Config{Enabled: progress.ShouldShowProgress(showProgress)})
		result, err := e.Extract(ctx, req, bars.NewStageBar("extract"))
		bars.Wait()
		if err != nil {
			return err
		}
		return cmdutil.PrintJSON(os.Stdout, result)
	},
}
