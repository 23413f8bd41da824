package led

import (
	"fmt"
	"sort"
)

// Field names a sub-parameter of an indicator.
type Field string

// Fields addressed by set_indicator_value commands.
const (
	FieldBrightness Field = "brightness"
	FieldBehavior   Field = "behavior"
	FieldFrequency  Field = "frequency"
	FieldRed        Field = "red"
	FieldGreen      Field = "green"
	FieldBlue       Field = "blue"
)

// LED is a physical indicator location on the chassis.
type LED struct {
	Name string `json:"name"`
	Code int    `json:"code"`
}

// Indicator is a logical signal a LED can be wired to display.
type Indicator struct {
	Name string `json:"name"`
	Code int    `json:"code"`
}

// Layout maps the fields of one indicator type to their offsets. A field's
// offset is its position in the firmware's parameter block.
type Layout struct {
	fields []Field
}

func newLayout(fields ...Field) Layout {
	return Layout{fields: fields}
}

// Offset returns the offset of field within the layout.
func (l Layout) Offset(field Field) (int, bool) {
	for i, f := range l.fields {
		if f == field {
			return i, true
		}
	}
	return 0, false
}

// Fields returns the layout's fields in offset order.
func (l Layout) Fields() []Field {
	out := make([]Field, len(l.fields))
	copy(out, l.fields)
	return out
}

var ledCodes = map[string]int{
	"button": 0,
	"skull":  2,
	"eyes":   3,
	"f1":     4,
	"f2":     5,
	"f3":     6,
}

var indicatorCodes = map[string]int{
	"power":       0,
	"hddio":       1,
	"netio":       2,
	"wifi":        3,
	"power_limit": 5,
	"off":         6,
}

// power_limit and off take no color parameters.
var layouts = map[string]Layout{
	"power": newLayout(FieldBrightness, FieldBehavior, FieldFrequency, FieldRed, FieldGreen, FieldBlue),
	"hddio": newLayout(FieldBrightness, FieldRed, FieldGreen, FieldBlue, FieldBehavior),
	"netio": newLayout(FieldBehavior, FieldBrightness, FieldRed, FieldGreen, FieldBlue),
	"wifi":  newLayout(FieldBrightness, FieldRed, FieldGreen, FieldBlue),
}

// LookupLED resolves a LED name to its code.
func LookupLED(name string) (LED, error) {
	code, ok := ledCodes[name]
	if !ok {
		return LED{}, newError(ErrUnknownSymbol, fmt.Sprintf("unknown LED %q", name), nil)
	}
	return LED{Name: name, Code: code}, nil
}

// LookupIndicator resolves an indicator source name to its code.
func LookupIndicator(name string) (Indicator, error) {
	code, ok := indicatorCodes[name]
	if !ok {
		return Indicator{}, newError(ErrUnknownSymbol, fmt.Sprintf("unknown indicator %q", name), nil)
	}
	return Indicator{Name: name, Code: code}, nil
}

// LayoutFor returns the field layout of the named indicator. The second
// result is false for indicators that take no color parameters and for names
// that are not indicators at all.
func LayoutFor(indicator string) (Layout, bool) {
	l, ok := layouts[indicator]
	return l, ok
}

// Layout returns the indicator's field layout, if it has one.
func (i Indicator) Layout() (Layout, bool) {
	return LayoutFor(i.Name)
}

// LEDs returns every known LED ordered by code.
func LEDs() []LED {
	out := make([]LED, 0, len(ledCodes))
	for name, code := range ledCodes {
		out = append(out, LED{Name: name, Code: code})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Code < out[b].Code })
	return out
}

// Indicators returns every known indicator ordered by code.
func Indicators() []Indicator {
	out := make([]Indicator, 0, len(indicatorCodes))
	for name, code := range indicatorCodes {
		out = append(out, Indicator{Name: name, Code: code})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Code < out[b].Code })
	return out
}
