package main

import (
	"log/slog"
	"os"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/smazurov/nucled/cmd"
	"github.com/smazurov/nucled/internal/config"
	"github.com/smazurov/nucled/internal/logging"
	"github.com/smazurov/nucled/internal/startup"
)

func main() {
	var cli humacli.CLI
	cli = humacli.New(func(hooks humacli.Hooks, opts *cmd.Options) {
		// Flags are parsed by now; overlay env vars and the config file.
		if loadErr := config.LoadConfig(opts, cli.Root()); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		logging.Initialize(cmd.LoggingConfig(opts))

		// The root command applies the lights file once and exits.
		hooks.OnStart(func() {
			app := cmd.NewApp(opts)
			if outcome := app.Apply(); outcome.State != startup.StateCompleted {
				os.Exit(1)
			}
		})
	})

	cli.Root().Use = "nucled"
	cli.Root().Short = "Configure Intel NUC indicator LEDs"
	cli.Root().Long = `Applies the LED settings listed in a lights configuration file by writing ` +
		`commands to the nuc_led kernel module's control file.`

	cli.Root().AddCommand(cmd.CreateWatchCmd())
	cli.Root().AddCommand(cmd.CreateServeCmd())
	cli.Root().AddCommand(cmd.CreatePlanCmd())
	cli.Root().AddCommand(cmd.CreateSymbolsCmd())
	cli.Root().AddCommand(cmd.CreateVersionCmd())

	cli.Run()
}
