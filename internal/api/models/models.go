package models

import "github.com/smazurov/nucled/internal/logging"

// Health check models
type HealthData struct {
	Status  string `json:"status" example:"ok" doc:"Service status"`
	Message string `json:"message" example:"API is healthy" doc:"Status message"`
	Device  string `json:"device" example:"/proc/acpi/nuc_led" doc:"Device LED commands are written to"`
	State   string `json:"state" example:"completed" doc:"State of the last lights batch"`
}

type HealthResponse struct {
	Body HealthData
}

// Version models
type VersionData struct {
	Name      string `json:"name" example:"nucled" doc:"Application name"`
	Version   string `json:"version" example:"dev" doc:"Application version"`
	GitCommit string `json:"git_commit" example:"abc1234" doc:"Git commit SHA"`
	BuildDate string `json:"build_date" example:"2024-12-15 14:30" doc:"Build timestamp"`
	BuildID   string `json:"build_id" example:"a1b2c3d4" doc:"Unique build identifier"`
	GoVersion string `json:"go_version" example:"go1.24.0" doc:"Go compiler version"`
	Compiler  string `json:"compiler" example:"gc" doc:"Compiler used"`
	Platform  string `json:"platform" example:"linux/amd64" doc:"Platform"`
}

type VersionResponse struct {
	Body VersionData
}

// Light setting models
type LightSettingData struct {
	LED        string `json:"led" example:"button" doc:"LED name (button, skull, eyes, f1, f2, f3)"`
	Source     string `json:"source" example:"power" doc:"Indicator source (power, hddio, netio, wifi, power_limit, off)"`
	Brightness int    `json:"brightness" minimum:"0" maximum:"255" example:"50" doc:"Brightness written to the brightness field"`
	Color      string `json:"color" example:"#FF8000" doc:"Color as #RRGGBB or RRGGBB"`
}

type LightRequest struct {
	Body LightSettingData
}

type LightResultData struct {
	Commands    []string `json:"commands" doc:"Command lines written to the control file, in order"`
	WriteErrors []string `json:"write_errors,omitempty" doc:"Writes that failed; the remaining commands were still written"`
}

type LightResponse struct {
	Body LightResultData
}

// Batch models
type ApplyData struct {
	RunID       string `json:"run_id" example:"3f0c9a52-8d0e-4f43-9a51-2b0f4c1d7e66" doc:"Identifier of the batch run"`
	LightsFile  string `json:"lights_file" example:"lights_conf.json" doc:"Lights configuration that was applied"`
	State       string `json:"state" example:"completed" doc:"Final state: completed or failed"`
	Applied     int    `json:"applied" example:"3" doc:"Settings applied"`
	WriteErrors int    `json:"write_errors" example:"0" doc:"Device writes that failed"`
	Error       string `json:"error,omitempty" doc:"Reason the batch failed"`
	DurationMs  int64  `json:"duration_ms" example:"4" doc:"Batch duration in milliseconds"`
}

type ApplyResponse struct {
	Body ApplyData
}

// Symbol models
type LEDSymbol struct {
	Name string `json:"name" example:"button" doc:"LED name"`
	Code int    `json:"code" example:"0" doc:"Code written to the control file"`
}

type IndicatorSymbol struct {
	Name   string   `json:"name" example:"hddio" doc:"Indicator name"`
	Code   int      `json:"code" example:"1" doc:"Code written to the control file"`
	Fields []string `json:"fields,omitempty" doc:"Field names in offset order; empty when colors cannot be set"`
}

type SymbolsData struct {
	LEDs       []LEDSymbol       `json:"leds" doc:"Known LEDs"`
	Indicators []IndicatorSymbol `json:"indicators" doc:"Known indicator sources"`
}

type SymbolsResponse struct {
	Body SymbolsData
}

// Log models
type LogsRequest struct {
	Limit  int    `query:"limit" default:"100" minimum:"1" maximum:"500" doc:"Maximum number of entries"`
	Module string `query:"module" example:"led" doc:"Only return entries from this module"`
}

type LogsData struct {
	Entries []logging.LogEntry `json:"entries" doc:"Log entries, oldest first"`
	Count   int                `json:"count" example:"42" doc:"Number of entries returned"`
}

type LogsResponse struct {
	Body LogsData
}
