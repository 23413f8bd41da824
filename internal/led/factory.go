package led

import (
	"log/slog"
	"os"
	"strings"
)

const dmiProductNamePath = "/sys/class/dmi/id/product_name"

// NewDevice returns the device the emitter should write to. Dry runs get a
// logging no-op device; everything else goes to the control file, even when it
// is missing, so that each failed write is reported rather than hidden.
func NewDevice(controlFile string, dryRun bool, logger *slog.Logger) Device {
	if dryRun {
		logger.Info("Dry run enabled, using no-op LED device")
		return newNoop(logger)
	}

	if controlFile == "" {
		controlFile = DefaultControlFile
	}

	product := detectProduct()
	logger.Info("Detecting platform for LED control", "product", product, "control_file", controlFile)

	if _, err := os.Stat(controlFile); err != nil {
		logger.Warn("LED control file not available, writes will fail (is the nuc_led module loaded?)",
			"control_file", controlFile,
			"error", err)
	}

	return newProcfs(controlFile)
}

// detectProduct reads the DMI product name to identify the platform.
func detectProduct() string {
	data, err := os.ReadFile(dmiProductNamePath)
	if err != nil {
		return "unknown"
	}

	product := strings.TrimSpace(string(data))
	if product == "" {
		return "unknown"
	}
	return product
}
