// Package metrics provides Prometheus metrics for LED command emission and
// startup runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	deviceCommands = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nucled",
		Subsystem: "device",
		Name:      "commands_total",
		Help:      "Commands written to the LED control file",
	}, []string{"kind"})

	deviceWriteErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nucled",
		Subsystem: "device",
		Name:      "write_errors_total",
		Help:      "Control file writes that failed",
	}, []string{"kind"})

	settingsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nucled",
		Subsystem: "lights",
		Name:      "settings_applied_total",
		Help:      "LED settings emitted to the device",
	}, []string{"led", "source"})

	runs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nucled",
		Subsystem: "startup",
		Name:      "runs_total",
		Help:      "Startup driver runs by final state",
	}, []string{"state"})

	lastRunTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "nucled",
		Subsystem: "startup",
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time the last startup run finished",
	})

	lastRunApplied = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "nucled",
		Subsystem: "startup",
		Name:      "last_run_applied_settings",
		Help:      "Settings applied by the last startup run",
	})
)

// RecordCommand counts one control file write attempt.
func RecordCommand(kind string, err error) {
	deviceCommands.WithLabelValues(kind).Inc()
	if err != nil {
		deviceWriteErrors.WithLabelValues(kind).Inc()
	}
}

// RecordSetting counts one emitted LED setting.
func RecordSetting(led, source string) {
	settingsApplied.WithLabelValues(led, source).Inc()
}

// RecordRun records the outcome of a startup run.
func RecordRun(state string, applied int, finished time.Time) {
	runs.WithLabelValues(state).Inc()
	lastRunTimestamp.Set(float64(finished.Unix()))
	lastRunApplied.Set(float64(applied))
}
