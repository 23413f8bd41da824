package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/smazurov/nucled/internal/config"
	"github.com/smazurov/nucled/internal/lights"
	"github.com/spf13/cobra"
)

// CreateWatchCmd creates the watch command.
func CreateWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Apply the lights file and re-apply it on every change",
		Long: `Applies the lights configuration once, then watches the file and applies it again ` +
			`whenever it changes. A file that no longer parses is reported and the LEDs are left as they are.`,
		Args: cobra.NoArgs,
		Run: humacli.WithOptions(func(_ *cobra.Command, _ []string, opts *Options) {
			app := NewApp(opts)
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := watch(ctx, app); err != nil {
				app.Logger.Error("Failed to watch lights file", "path", opts.Lights, "error", err)
				os.Exit(1)
			}
		}),
	}
}

// watch applies the batch, then re-applies it on change until ctx is done.
func watch(ctx context.Context, app *App) error {
	app.Apply()

	watcher := config.NewConfigWatcher(app.Options.Lights, lights.Load, app.Logger,
		config.WithErrorHandler[[]lights.Setting](func(err error) {
			app.Logger.Warn("Lights file changed but cannot be used, keeping current LEDs", "error", err)
		}),
	)
	watcher.OnReload(func(settings []lights.Setting) {
		app.Logger.Info("Lights file changed, re-applying", "settings", len(settings))
		app.Apply()
	})

	if err := watcher.Start(); err != nil {
		return err
	}
	defer func() { _ = watcher.Stop() }()

	notifyReady(app)
	<-ctx.Done()
	app.Logger.Info("Stopping watcher")
	return nil
}

// notifyReady tells systemd the service is up. Outside systemd it does nothing.
func notifyReady(app *App) {
	sent, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	switch {
	case err != nil:
		app.Logger.Warn("Failed to notify systemd", "error", err)
	case sent:
		app.Logger.Debug("Notified systemd of readiness")
	}
}
