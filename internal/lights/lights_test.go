package lights

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "lights_conf.json", `{
  "lights": [
    {"led": "button", "source": "power", "brightness": 50, "color": "#FF8000"},
    {"led": "skull", "source": "hddio", "brightness": 10, "color": "112233"}
  ]
}`)

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(settings) != 2 {
		t.Fatalf("got %d settings, want 2", len(settings))
	}

	first := settings[0]
	if first.LED != "button" || first.Source != "power" || first.Brightness != 50 || first.Color != "#FF8000" {
		t.Errorf("first setting = %+v", first)
	}
	for i, s := range settings {
		if err := s.Validate(); err != nil {
			t.Errorf("setting %d Validate() = %v", i, err)
		}
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "lights.toml", `
[[lights]]
led = "eyes"
source = "wifi"
brightness = 20
color = "#0000FF"

[[lights]]
led = "f1"
source = "off"
brightness = 0
color = "#000000"
`)

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(settings) != 2 {
		t.Fatalf("got %d settings, want 2", len(settings))
	}
	if settings[0].LED != "eyes" || settings[0].Brightness != 20 {
		t.Errorf("first setting = %+v", settings[0])
	}
	if settings[1].Source != "off" {
		t.Errorf("second setting = %+v", settings[1])
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    ErrorCode
	}{
		{"malformed json", "lights.json", `{"lights": [`, ErrConfigParseError},
		{"trailing garbage", "lights.json", `{"lights": [{"led": "button", "source": "power", "brightness": 50, "color": "#FF8000"}]} }}} not json`, ErrConfigParseError},
		{"two documents", "lights.json", `{"lights": []} {"lights": []}`, ErrConfigParseError},
		{"lights not a list", "lights.json", `{"lights": {"led": "button"}}`, ErrConfigParseError},
		{"malformed toml", "lights.toml", `[[lights]`, ErrConfigParseError},
		{"no lights key", "lights.json", `{"leds": []}`, ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if !IsCode(err, tt.want) {
				t.Errorf("Load() error = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "lights_conf.json"))
	if !IsCode(err, ErrConfigNotFound) {
		t.Errorf("Load() error = %v, want %s", err, ErrConfigNotFound)
	}
}

func TestMissingFieldIsPerRecord(t *testing.T) {
	settings, err := Parse([]byte(`{"lights": [
		{"led": "button", "source": "power", "brightness": 50, "color": "#FF8000"},
		{"led": "skull", "source": "hddio"}
	]}`), FormatJSON)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if err := settings[0].Validate(); err != nil {
		t.Errorf("complete record Validate() = %v", err)
	}

	err = settings[1].Validate()
	if !IsCode(err, ErrMissingField) {
		t.Fatalf("Validate() = %v, want %s", err, ErrMissingField)
	}
	if got := err.Error(); got != "[MISSING_FIELD] setting is missing brightness, color" {
		t.Errorf("Validate() message = %q", got)
	}
}

func TestWrongTypeIsPerRecord(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		content string
	}{
		{"json", FormatJSON, `{"lights": [
			{"led": "button", "source": "power", "brightness": 50, "color": "#FF8000"},
			{"led": 5, "source": "hddio", "brightness": 10, "color": "#112233"}
		]}`},
		{"toml", FormatTOML, `
[[lights]]
led = "button"
source = "power"
brightness = 50
color = "#FF8000"

[[lights]]
led = "skull"
source = "hddio"
brightness = "high"
color = "#112233"
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings, err := Parse([]byte(tt.content), tt.format)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(settings) != 2 {
				t.Fatalf("got %d settings, want 2", len(settings))
			}
			if err := settings[0].Validate(); err != nil {
				t.Errorf("first record Validate() = %v", err)
			}
			if settings[0].LED != "button" || settings[0].Brightness != 50 {
				t.Errorf("first setting = %+v", settings[0])
			}
			if err := settings[1].Validate(); !IsCode(err, ErrConfigParseError) {
				t.Errorf("second record Validate() = %v, want %s", err, ErrConfigParseError)
			}
		})
	}
}

func TestZeroValuesAreNotMissing(t *testing.T) {
	settings, err := Parse([]byte(`{"lights": [{"led": "", "source": "", "brightness": 0, "color": ""}]}`), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if err := settings[0].Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil for explicit zero values", err)
	}
}

func TestFormatFor(t *testing.T) {
	tests := map[string]Format{
		"lights_conf.json": FormatJSON,
		"lights.TOML":      FormatTOML,
		"lights.toml":      FormatTOML,
		"lights":           FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFor(path); got != want {
			t.Errorf("FormatFor(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestSettingString(t *testing.T) {
	s := Setting{LED: "button", Source: "power", Brightness: 50, Color: "#FF8000"}
	if got := s.String(); got != "led=button source=power brightness=50 color=#FF8000" {
		t.Errorf("String() = %q", got)
	}
}
