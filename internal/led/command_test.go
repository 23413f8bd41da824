package led

import (
	"encoding/json"
	"testing"
)

func TestCommandString(t *testing.T) {
	button := LED{Name: "button", Code: 0}
	skull := LED{Name: "skull", Code: 2}
	power := Indicator{Name: "power", Code: 0}
	hddio := Indicator{Name: "hddio", Code: 1}

	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{"set indicator", SetIndicator(button, power), "set_indicator,0,0"},
		{"set indicator value", SetIndicatorValue(skull, hddio, 3, 51), "set_indicator_value,2,1,3,51"},
		{"zero value", SetIndicatorValue(skull, hddio, 0, 0), "set_indicator_value,2,1,0,0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cmd.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommandJSONUsesLineFormat(t *testing.T) {
	data, err := json.Marshal([]Command{{Kind: KindSetIndicator, LED: 3, Indicator: 6}})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `["set_indicator,3,6"]` {
		t.Errorf("json = %s", data)
	}
}
