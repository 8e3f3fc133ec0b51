// Package cmdutil holds what the yt2t subcommands share.
package cmdutil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"yt2t/internal/config"
)

// Verbose is bound to the root --verbose flag.
var Verbose bool

// LoadSettings loads .env, the YAML overlay and the environment. --verbose
// forces debug logging.
func LoadSettings() (*config.Settings, error) {
	settings, envFile, err := config.InitializeConfig()
	if err != nil {
		return nil, err
	}
	if Verbose {
		settings.LogLevel = "debug"
		if envFile != "" {
			fmt.Fprintf(os.Stderr, "Loaded environment from %s\n", envFile)
		}
	}
	return settings, nil
}

// SignalContext is cancelled on SIGINT or SIGTERM, so deferred cleanup runs
// instead of the process dying mid-step.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// PrintJSON writes v indented.
func PrintJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
