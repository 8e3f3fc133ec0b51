package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"yt2t/cmd/yt2t/cmd/cmdutil"
	"yt2t/cmd/yt2t/cmd/config"
	"yt2t/cmd/yt2t/cmd/extract"
	"yt2t/cmd/yt2t/cmd/probe"
	"yt2t/cmd/yt2t/cmd/serve"
	"yt2t/cmd/yt2t/cmd/transcribe"
	"yt2t/cmd/yt2t/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "yt2t",
	Short: "Extract audio from YouTube videos and transcribe it",
	Long: `yt2t runs two HTTP services and their one-shot CLI equivalents.
- The extractor downloads a video's audio and normalizes it to wav or mp3
- The STT gateway transcribes a local WAV file with whisper.cpp or OpenAI
- Configuration comes from .env, an optional YAML file (YT2T_CONFIG) and the environment`,
	SilenceUsage:     true,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(extract.Cmd)
	rootCmd.AddCommand(probe.Cmd)
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(config.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&cmdutil.Verbose, "verbose", "V", false, "verbose output")
}
