package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"yt2t/cmd/yt2t/cmd/cmdutil"
	appconfig "yt2t/internal/config"
)

var force bool

func init() {
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(initCmd)
}

// Cmd represents the config command
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or write the YAML configuration",
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings after .env, YAML and environment",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := cmdutil.LoadSettings()
		if err != nil {
			return err
		}
		redacted := *settings
		redacted.STT.OpenAIAPIKey = mask(redacted.STT.OpenAIAPIKey)
		redacted.Cache.RedisPassword = mask(redacted.Cache.RedisPassword)
		redacted.Mirror.SecretKey = mask(redacted.Mirror.SecretKey)
		redacted.History.DatabaseURL = mask(redacted.History.DatabaseURL)
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(&redacted); err != nil {
			return err
		}
		return enc.Close()
	},
}

var initCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Write the default settings as a YAML file to start from",
	Long: `Write the default settings as a YAML file. Point YT2T_CONFIG at it to
load it; environment variables still override its values.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}

		defaults := appconfig.Defaults()
		if err := appconfig.SaveFile(&defaults, path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}
