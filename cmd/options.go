package cmd

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"nucled.toml"`

	// Lights settings
	Lights  string `help:"Lights configuration file (.json or .toml)" short:"l" default:"lights_conf.json" toml:"lights.file" env:"LIGHTS_FILE"`
	LogFile string `help:"Run log, truncated on every run" default:"log" toml:"log.file" env:"LOG_FILE"`

	// Device settings
	ControlFile string `help:"LED control file exposed by the nuc_led kernel module" default:"/proc/acpi/nuc_led" toml:"device.control_file" env:"DEVICE_CONTROL_FILE"`
	DryRun      bool   `help:"Log LED commands instead of writing them" default:"false" toml:"device.dry_run" env:"DEVICE_DRY_RUN"`

	// Server settings
	Port string `help:"Address the serve command listens on" short:"p" default:":8091" toml:"server.port" env:"SERVER_PORT"`

	// Auth settings, empty disables auth
	AuthUsername string `help:"Basic auth username" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Metrics settings
	MetricsTextfile string `help:"Write Prometheus metrics to this file after each run" toml:"metrics.textfile" env:"METRICS_TEXTFILE"`

	// Logging settings
	LoggingLevel   string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat  string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingLED     string `help:"LED emitter logging level" toml:"logging.led" env:"LOGGING_LED"`
	LoggingStartup string `help:"Startup driver logging level" toml:"logging.startup" env:"LOGGING_STARTUP"`
	LoggingAPI     string `help:"API logging level" toml:"logging.api" env:"LOGGING_API"`
}
