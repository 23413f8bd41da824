package led

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/smazurov/nucled/internal/events"
	"github.com/smazurov/nucled/internal/metrics"
)

// Report lists the commands an emitter call wrote and the writes that failed.
// Write failures never stop the remaining commands.
type Report struct {
	Commands []Command
	Failures []error
}

// Err joins every write failure, or returns nil when all writes succeeded.
func (r Report) Err() error {
	return errors.Join(r.Failures...)
}

func (r *Report) merge(other Report) {
	r.Commands = append(r.Commands, other.Commands...)
	r.Failures = append(r.Failures, other.Failures...)
}

// Emitter turns symbolic LED requests into control file commands.
// Calls are serialized so the commands of one request are never interleaved
// with another's.
type Emitter struct {
	device Device
	logger *slog.Logger
	bus    *events.Bus
	mu     sync.Mutex
}

// EmitterOption configures an Emitter.
type EmitterOption func(*Emitter)

// WithEventBus publishes command and setting events on bus.
func WithEventBus(bus *events.Bus) EmitterOption {
	return func(e *Emitter) {
		e.bus = bus
	}
}

// NewEmitter creates an emitter writing to device.
func NewEmitter(device Device, logger *slog.Logger, opts ...EmitterOption) *Emitter {
	e := &Emitter{
		device: device,
		logger: logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Device returns the device commands are written to.
func (e *Emitter) Device() Device {
	return e.device
}

// SetSource routes indicator to led with a single set_indicator command.
func (e *Emitter) SetSource(led, indicator string) (Report, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.setSource(led, indicator)
}

// SetIndicatorColor writes brightness, red, green and blue for indicator on led,
// in that order. Indicators without color fields (power_limit, off, or names
// that are not indicators) produce no commands and no error; the color is
// still validated first.
func (e *Emitter) SetIndicatorColor(led, indicator string, brightness int, hexColor string) (Report, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.setIndicatorColor(led, indicator, brightness, hexColor)
}

// SetColorAndSource sets the source, then the color. The source command is
// written even when the color step turns out to be a no-op.
func (e *Emitter) SetColorAndSource(led, indicator string, brightness int, hexColor string) (Report, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	report, err := e.setSource(led, indicator)
	if err != nil {
		return report, err
	}

	colorReport, err := e.setIndicatorColor(led, indicator, brightness, hexColor)
	report.merge(colorReport)
	if err != nil {
		return report, err
	}

	metrics.RecordSetting(led, indicator)
	e.bus.Publish(events.SettingAppliedEvent{
		LED:         led,
		Source:      indicator,
		Brightness:  brightness,
		Color:       hexColor,
		Commands:    len(report.Commands),
		WriteErrors: len(report.Failures),
		Timestamp:   time.Now().Format(time.RFC3339),
	})

	return report, nil
}

func (e *Emitter) setSource(led, indicator string) (Report, error) {
	l, err := LookupLED(led)
	if err != nil {
		return Report{}, err
	}
	ind, err := LookupIndicator(indicator)
	if err != nil {
		return Report{}, err
	}

	return e.emit(SetIndicator(l, ind)), nil
}

func (e *Emitter) setIndicatorColor(led, indicator string, brightness int, hexColor string) (Report, error) {
	color, err := ParseColor(hexColor)
	if err != nil {
		return Report{}, err
	}

	layout, ok := LayoutFor(indicator)
	if !ok {
		e.logger.Debug("Indicator has no color fields, skipping color", "led", led, "indicator", indicator)
		return Report{}, nil
	}

	l, err := LookupLED(led)
	if err != nil {
		return Report{}, err
	}
	ind, err := LookupIndicator(indicator)
	if err != nil {
		return Report{}, err
	}

	values := []struct {
		field Field
		value int
	}{
		{FieldBrightness, brightness},
		{FieldRed, int(color.R)},
		{FieldGreen, int(color.G)},
		{FieldBlue, int(color.B)},
	}

	// Every layout carries brightness and the three color channels.
	cmds := make([]Command, 0, len(values))
	for _, v := range values {
		offset, _ := layout.Offset(v.field)
		cmds = append(cmds, SetIndicatorValue(l, ind, offset, v.value))
	}

	return e.emit(cmds...), nil
}

// emit writes each command in order, collecting failures instead of stopping.
func (e *Emitter) emit(cmds ...Command) Report {
	var report Report

	for _, cmd := range cmds {
		line := cmd.String()
		err := e.device.Write(cmd)
		report.Commands = append(report.Commands, cmd)
		metrics.RecordCommand(string(cmd.Kind), err)

		ev := events.CommandWrittenEvent{
			Line:      line,
			Device:    e.device.Name(),
			Timestamp: time.Now().Format(time.RFC3339),
		}

		if err != nil {
			if !IsCode(err, ErrDeviceWrite) {
				err = newError(ErrDeviceWrite, fmt.Sprintf("failed to write %q", line), err)
			}
			report.Failures = append(report.Failures, err)
			ev.Error = err.Error()
			e.logger.Warn("LED command write failed", "command", line, "device", e.device.Name(), "error", err)
		} else {
			e.logger.Debug("LED command written", "command", line, "device", e.device.Name())
		}

		e.bus.Publish(ev)
	}

	return report
}
