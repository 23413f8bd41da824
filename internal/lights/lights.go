// Package lights loads the declarative list of LED settings applied at startup.
package lights

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFile is the lights configuration read when no path is given.
const DefaultFile = "lights_conf.json"

// Format selects the decoder for a lights configuration.
type Format string

// Supported lights configuration formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Setting is one requested LED configuration.
type Setting struct {
	LED        string `json:"led" toml:"led"`
	Source     string `json:"source" toml:"source"`
	Brightness int    `json:"brightness" toml:"brightness"`
	Color      string `json:"color" toml:"color"`

	// missing lists required keys absent from the record.
	missing []string
	// invalid holds the decode error of a record whose values have the wrong type.
	invalid error
}

// Validate reports a CONFIG_PARSE_ERROR when the record could not be decoded
// and a MISSING_FIELD error when it lacked a required key. Records are
// validated one by one as they are applied, so settings before a broken
// record still take effect.
func (s Setting) Validate() error {
	if s.invalid != nil {
		return s.invalid
	}
	if len(s.missing) == 0 {
		return nil
	}
	return newError(ErrMissingField, fmt.Sprintf("setting is missing %s", strings.Join(s.missing, ", ")), nil)
}

// String renders the setting for log lines.
func (s Setting) String() string {
	return fmt.Sprintf("led=%s source=%s brightness=%d color=%s", s.LED, s.Source, s.Brightness, s.Color)
}

// rawSetting uses pointers so absent keys can be told apart from zero values.
type rawSetting struct {
	LED        *string `json:"led" toml:"led"`
	Source     *string `json:"source" toml:"source"`
	Brightness *int    `json:"brightness" toml:"brightness"`
	Color      *string `json:"color" toml:"color"`
}

type rawJSONFile struct {
	Lights *[]json.RawMessage `json:"lights"`
}

type rawTOMLFile struct {
	Lights *[]map[string]any `toml:"lights"`
}

// FormatFor picks the format from the file extension. Anything that is not
// .toml is read as JSON.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// Load reads and parses the lights configuration at path.
func Load(path string) ([]Setting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(ErrConfigNotFound, fmt.Sprintf("lights configuration %s does not exist", path), err)
		}
		return nil, newError(ErrConfigNotFound, fmt.Sprintf("lights configuration %s cannot be read", path), err)
	}

	return Parse(data, FormatFor(path))
}

// Parse decodes a lights configuration. The document itself must be well
// formed and carry the top-level "lights" key. Each record is decoded on its
// own; a record with a wrong value type or missing keys is reported by
// Setting.Validate.
func Parse(data []byte, format Format) ([]Setting, error) {
	switch format {
	case FormatTOML:
		return parseTOML(data)
	default:
		return parseJSON(data)
	}
}

func parseJSON(data []byte) ([]Setting, error) {
	var raw rawJSONFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, newError(ErrConfigParseError, "invalid JSON lights configuration", err)
	}
	if raw.Lights == nil {
		return nil, errNoLightsKey
	}

	settings := make([]Setting, 0, len(*raw.Lights))
	for i, record := range *raw.Lights {
		var r rawSetting
		if err := json.Unmarshal(record, &r); err != nil {
			settings = append(settings, invalidSetting(i, err))
			continue
		}
		settings = append(settings, r.setting())
	}
	return settings, nil
}

func parseTOML(data []byte) ([]Setting, error) {
	var raw rawTOMLFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, newError(ErrConfigParseError, "invalid TOML lights configuration", err)
	}
	if raw.Lights == nil {
		return nil, errNoLightsKey
	}

	settings := make([]Setting, 0, len(*raw.Lights))
	for i, record := range *raw.Lights {
		var r rawSetting
		encoded, err := toml.Marshal(record)
		if err == nil {
			err = toml.Unmarshal(encoded, &r)
		}
		if err != nil {
			settings = append(settings, invalidSetting(i, err))
			continue
		}
		settings = append(settings, r.setting())
	}
	return settings, nil
}

var errNoLightsKey = newError(ErrMissingField, `lights configuration has no "lights" key`, nil)

func invalidSetting(index int, err error) Setting {
	return Setting{invalid: newError(ErrConfigParseError, fmt.Sprintf("lights record %d is invalid", index), err)}
}

func (r rawSetting) setting() Setting {
	var s Setting
	if r.LED != nil {
		s.LED = *r.LED
	} else {
		s.missing = append(s.missing, "led")
	}
	if r.Source != nil {
		s.Source = *r.Source
	} else {
		s.missing = append(s.missing, "source")
	}
	if r.Brightness != nil {
		s.Brightness = *r.Brightness
	} else {
		s.missing = append(s.missing, "brightness")
	}
	if r.Color != nil {
		s.Color = *r.Color
	} else {
		s.missing = append(s.missing, "color")
	}
	return s
}
