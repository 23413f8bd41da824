package led

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Color is a 24-bit RGB value.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// ParseColor decodes "#RRGGBB" or "RRGGBB" into its three channels.
func ParseColor(s string) (Color, error) {
	digits := strings.TrimPrefix(s, "#")
	if len(digits) != 6 {
		return Color{}, newError(ErrMalformedColor, fmt.Sprintf("color %q is not 6 hex digits", s), nil)
	}

	raw, err := hex.DecodeString(digits)
	if err != nil {
		return Color{}, newError(ErrMalformedColor, fmt.Sprintf("color %q is not 6 hex digits", s), err)
	}

	return Color{R: raw[0], G: raw[1], B: raw[2]}, nil
}

// String renders the color as "#RRGGBB".
func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
