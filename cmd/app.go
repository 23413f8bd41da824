// Package cmd holds the nucled subcommands and the wiring they share.
package cmd

import (
	"log/slog"

	"github.com/smazurov/nucled/internal/config"
	"github.com/smazurov/nucled/internal/events"
	"github.com/smazurov/nucled/internal/led"
	"github.com/smazurov/nucled/internal/logging"
	"github.com/smazurov/nucled/internal/metrics/exporters"
	"github.com/smazurov/nucled/internal/startup"
)

// App is the set of components every command runs on.
type App struct {
	Options *Options
	Logger  *slog.Logger
	Bus     *events.Bus
	Device  led.Device
	Emitter *led.Emitter
	Driver  *startup.Driver
}

// NewApp wires the device, emitter and startup driver from opts.
func NewApp(opts *Options) *App {
	bus := events.New()
	ledLogger := logging.GetLogger("led")

	device := led.NewDevice(opts.ControlFile, opts.DryRun, ledLogger)
	emitter := led.NewEmitter(device, ledLogger, led.WithEventBus(bus))
	driver := startup.NewDriver(emitter, startup.Options{
		LightsFile: opts.Lights,
		LogFile:    opts.LogFile,
	}, logging.GetLogger("startup"), bus)

	return &App{
		Options: opts,
		Logger:  logging.GetLogger("main"),
		Bus:     bus,
		Device:  device,
		Emitter: emitter,
		Driver:  driver,
	}
}

// Apply runs the lights batch once and exports metrics when configured.
func (a *App) Apply() startup.Outcome {
	outcome := a.Driver.Run()
	if outcome.State == startup.StateFailed {
		a.Logger.Error("Lights batch failed", "lights_file", a.Options.Lights, "applied", outcome.Applied, "error", outcome.Err)
	} else {
		a.Logger.Info("Lights batch completed", "lights_file", a.Options.Lights, "applied", outcome.Applied, "write_errors", outcome.WriteErrors, "duration", outcome.Duration)
	}
	a.ExportMetrics()
	return outcome
}

// ExportMetrics writes the metrics textfile if one is configured.
func (a *App) ExportMetrics() {
	if a.Options.MetricsTextfile == "" {
		return
	}
	if err := exporters.WriteTextfile(a.Options.MetricsTextfile); err != nil {
		a.Logger.Warn("Failed to export metrics", "path", a.Options.MetricsTextfile, "error", err)
	}
}

// LoggingConfig builds the logging configuration for opts. Module levels in
// the config file's [logging] table apply unless a dedicated option is set.
func LoggingConfig(opts *Options) logging.Config {
	return config.LoggingConfig(opts.LoggingLevel, opts.LoggingFormat,
		config.LoadLoggingModules(opts.Config),
		map[string]string{
			"led":     opts.LoggingLED,
			"startup": opts.LoggingStartup,
			"api":     opts.LoggingAPI,
		})
}
