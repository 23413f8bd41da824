package led

import "log/slog"

// noop implements Device as a dry run for systems without the nuc_led module
type noop struct {
	logger *slog.Logger
}

// newNoop creates a new no-op device
func newNoop(logger *slog.Logger) *noop {
	return &noop{
		logger: logger,
	}
}

// Write logs the command but performs no actual LED control
func (n *noop) Write(cmd Command) error {
	n.logger.Info("Dry run, command not written", "command", cmd.String())
	return nil
}

// Name reports the device as a dry run
func (n *noop) Name() string {
	return "dry-run"
}
