package serve

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"yt2t/cmd/yt2t/cmd/cmdutil"
	"yt2t/internal/api/server"
	"yt2t/internal/app"
	"yt2t/internal/config"
)

const (
	shutdownTimeout = 30 * time.Second
	serviceAll      = "all"
)

var (
	host string
	port string
)

func init() {
	Cmd.Flags().StringVar(&host, "host", "", "bind host (overrides API_HOST)")
	Cmd.Flags().StringVarP(&port, "port", "p", "", "bind port (overrides API_PORT)")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve extractor|stt|all",
	Short: "Run the extractor service, the STT service, or both",
	Long: `Run HTTP services until SIGINT or SIGTERM, then shut down gracefully.
"all" runs both in one process on their default ports (8000 and 8001).`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{config.ServiceExtractor, config.ServiceSTT, serviceAll},
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := cmdutil.LoadSettings()
		if err != nil {
			return err
		}

		services := []string{args[0]}
		if args[0] == serviceAll {
			if port != "" {
				return fmt.Errorf("--port cannot be used with %q", serviceAll)
			}
			settings.Server.Port = ""
			services = []string{config.ServiceExtractor, config.ServiceSTT}
		}
		if host != "" {
			settings.Server.Host = host
		}
		if port != "" {
			if err := config.ValidatePort(port, "API"); err != nil {
				return err
			}
			settings.Server.Port = port
		}

		ctx, stop := cmdutil.SignalContext(cmd.Context())
		defer stop()

		g, gctx := errgroup.WithContext(ctx)
		for _, service := range services {
			srv, cleanup, err := build(ctx, service, settings)
			if err != nil {
				stop()
				_ = g.Wait()
				return fmt.Errorf("failed to start %s service: %w", service, err)
			}
			defer cleanup()

			g.Go(func() error {
				return srv.Run(gctx, shutdownTimeout)
			})
		}
		return g.Wait()
	},
}

func build(ctx context.Context, service string, settings *config.Settings) (*server.Server, func(), error) {
	if service == config.ServiceSTT {
		return app.InitializeSTTServer(ctx, settings)
	}
	return app.InitializeExtractorServer(ctx, settings)
}
