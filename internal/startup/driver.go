// Package startup applies a lights configuration file as one batch.
//
// A run moves through Idle, Running and then Completed or Failed. Settings are
// applied strictly in file order; the first setting that cannot be resolved
// ends the run without rolling back the ones already written. Device write
// failures are logged and counted but never fail a run.
package startup

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/smazurov/nucled/internal/events"
	"github.com/smazurov/nucled/internal/led"
	"github.com/smazurov/nucled/internal/lights"
	"github.com/smazurov/nucled/internal/logging"
	"github.com/smazurov/nucled/internal/metrics"
)

// DefaultLogFile is the run log written next to the lights configuration.
const DefaultLogFile = "log"

// State is the lifecycle state of the driver.
type State string

// Driver states.
const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

// Options configures a Driver.
type Options struct {
	// LightsFile is the lights configuration to apply.
	LightsFile string
	// LogFile is truncated and rewritten on every run. Empty disables the run log.
	LogFile string
}

// Outcome summarizes one run.
type Outcome struct {
	RunID       string
	State       State
	Applied     int
	WriteErrors int
	Err         error
	Duration    time.Duration
}

// Driver runs lights batches through an emitter. Runs are serialized.
type Driver struct {
	emitter *led.Emitter
	opts    Options
	logger  *slog.Logger
	bus     *events.Bus

	runMu   sync.Mutex
	stateMu sync.RWMutex
	state   State
	last    Outcome
}

// NewDriver creates an idle driver.
func NewDriver(emitter *led.Emitter, opts Options, logger *slog.Logger, bus *events.Bus) *Driver {
	if opts.LightsFile == "" {
		opts.LightsFile = lights.DefaultFile
	}
	return &Driver{
		emitter: emitter,
		opts:    opts,
		logger:  logger,
		bus:     bus,
		state:   StateIdle,
	}
}

// State returns the current driver state.
func (d *Driver) State() State {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.state
}

// LastOutcome returns the outcome of the most recent finished run.
func (d *Driver) LastOutcome() Outcome {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()
	return d.last
}

// LightsFile returns the configuration file the driver applies.
func (d *Driver) LightsFile() string {
	return d.opts.LightsFile
}

func (d *Driver) setState(s State) {
	d.stateMu.Lock()
	d.state = s
	d.stateMu.Unlock()
}

// Run applies the lights configuration once.
func (d *Driver) Run() Outcome {
	d.runMu.Lock()
	defer d.runMu.Unlock()

	start := time.Now()
	runID := uuid.NewString()
	d.setState(StateRunning)
	d.bus.Publish(events.RunStartedEvent{
		RunID:      runID,
		LightsFile: d.opts.LightsFile,
		Timestamp:  start.Format(time.RFC3339),
	})

	outcome := d.run(runID)
	outcome.RunID = runID
	outcome.Duration = time.Since(start)

	d.finish(outcome)
	return outcome
}

func (d *Driver) run(runID string) Outcome {
	base := d.logger.With("run_id", runID)
	logger := base
	if d.opts.LogFile != "" {
		runLog, err := logging.OpenRunLog(d.opts.LogFile)
		if err != nil {
			base.Error("Failure", "error", err)
			return Outcome{State: StateFailed, Err: err}
		}
		defer func() {
			if cerr := runLog.Close(); cerr != nil {
				base.Warn("Failed to close run log", "path", runLog.Path(), "error", cerr)
			}
		}()
		// Attributes go on after the tee so the run log carries them too.
		logger = runLog.Tee(d.logger).With("run_id", runID)
	}

	logger.Info("Begin", "lights_file", d.opts.LightsFile)

	settings, err := lights.Load(d.opts.LightsFile)
	if err != nil {
		return d.fail(logger, Outcome{}, err)
	}
	logger.Info("Loaded", "settings", len(settings))

	var outcome Outcome
	for i, s := range settings {
		logger.Info("Setting", "index", i, "led", s.LED, "source", s.Source, "brightness", s.Brightness, "color", s.Color)

		if err := s.Validate(); err != nil {
			return d.fail(logger, outcome, fmt.Errorf("setting %d: %w", i, err))
		}

		report, err := d.emitter.SetColorAndSource(s.LED, s.Source, s.Brightness, s.Color)
		outcome.WriteErrors += len(report.Failures)
		if len(report.Failures) > 0 {
			logger.Warn("Device writes failed", "index", i, "led", s.LED, "failed", len(report.Failures), "error", report.Err())
		}
		if err != nil {
			return d.fail(logger, outcome, fmt.Errorf("setting %d: %w", i, err))
		}
		outcome.Applied++
	}

	logger.Info("Completed successfully", "applied", outcome.Applied, "write_errors", outcome.WriteErrors)
	outcome.State = StateCompleted
	return outcome
}

func (d *Driver) fail(logger *slog.Logger, outcome Outcome, err error) Outcome {
	logger.Error("Failure", "error", err, "applied", outcome.Applied)
	outcome.State = StateFailed
	outcome.Err = err
	return outcome
}

func (d *Driver) finish(outcome Outcome) {
	d.stateMu.Lock()
	d.state = outcome.State
	d.last = outcome
	d.stateMu.Unlock()

	finished := time.Now()
	metrics.RecordRun(string(outcome.State), outcome.Applied, finished)

	ev := events.RunCompletedEvent{
		RunID:      outcome.RunID,
		LightsFile: d.opts.LightsFile,
		State:      string(outcome.State),
		Applied:    outcome.Applied,
		DurationMs: outcome.Duration.Milliseconds(),
		Timestamp:  finished.Format(time.RFC3339),
	}
	if outcome.Err != nil {
		ev.Error = outcome.Err.Error()
	}
	d.bus.Publish(ev)
}
