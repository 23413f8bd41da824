package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/smazurov/nucled/internal/api"
	"github.com/smazurov/nucled/internal/metrics/exporters"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

// CreateServeCmd creates the serve command.
func CreateServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Apply the lights file and serve the HTTP API",
		Long: `Applies the lights configuration once, then serves the HTTP API for changing single ` +
			`LEDs, re-applying the file, reading recent logs and scraping metrics.`,
		Args: cobra.NoArgs,
		Run: humacli.WithOptions(func(_ *cobra.Command, _ []string, opts *Options) {
			app := NewApp(opts)
			app.Apply()

			server := api.NewServer(&api.Options{
				AuthUsername:      opts.AuthUsername,
				AuthPassword:      opts.AuthPassword,
				Emitter:           app.Emitter,
				Driver:            app.Driver,
				EventBus:          app.Bus,
				PrometheusHandler: exporters.HTTPHandler(),
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start(opts.Port)
			}()
			notifyReady(app)

			select {
			case err := <-errCh:
				if err != nil {
					app.Logger.Error("Failed to start HTTP server", "error", err)
					os.Exit(1)
				}
			case <-ctx.Done():
				_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := server.Stop(shutdownCtx); err != nil {
					app.Logger.Error("Error stopping HTTP server", "error", err)
				}
			}
		}),
	}
}
