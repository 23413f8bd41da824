package led

import (
	"fmt"
)

// CommandKind is the verb of a control file line.
type CommandKind string

// Command kinds understood by the nuc_led kernel module.
const (
	KindSetIndicator      CommandKind = "set_indicator"
	KindSetIndicatorValue CommandKind = "set_indicator_value"
)

// Command is one line written to the control file.
// Field and Value are only meaningful for KindSetIndicatorValue.
type Command struct {
	Kind      CommandKind
	LED       int
	Indicator int
	Field     int
	Value     int
}

// SetIndicator builds the command that routes an indicator source to a LED.
func SetIndicator(led LED, indicator Indicator) Command {
	return Command{
		Kind:      KindSetIndicator,
		LED:       led.Code,
		Indicator: indicator.Code,
	}
}

// SetIndicatorValue builds the command that sets one field of an indicator.
func SetIndicatorValue(led LED, indicator Indicator, offset, value int) Command {
	return Command{
		Kind:      KindSetIndicatorValue,
		LED:       led.Code,
		Indicator: indicator.Code,
		Field:     offset,
		Value:     value,
	}
}

// String renders the command in the control file grammar, without the
// trailing newline.
func (c Command) String() string {
	if c.Kind == KindSetIndicator {
		return fmt.Sprintf("%s,%d,%d", c.Kind, c.LED, c.Indicator)
	}
	return fmt.Sprintf("%s,%d,%d,%d,%d", c.Kind, c.LED, c.Indicator, c.Field, c.Value)
}

// MarshalText implements encoding.TextMarshaler.
func (c Command) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
