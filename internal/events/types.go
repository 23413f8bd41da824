package events

// Event type constants for kelindar/event.
const (
	TypeCommandWritten uint32 = iota + 1
	TypeSettingApplied
	TypeRunStarted
	TypeRunCompleted
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// CommandWrittenEvent is published after each control file write attempt.
type CommandWrittenEvent struct {
	Line      string `json:"line" example:"set_indicator,0,0" doc:"Command line as written to the control file"`
	Device    string `json:"device" example:"/proc/acpi/nuc_led" doc:"Device that received the command"`
	Error     string `json:"error,omitempty" doc:"Write error, empty on success"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Write timestamp"`
}

// Type returns the event type identifier for CommandWrittenEvent.
func (e CommandWrittenEvent) Type() uint32 { return TypeCommandWritten }

// SettingAppliedEvent is published once a LED setting has been emitted.
type SettingAppliedEvent struct {
	LED         string `json:"led" example:"button" doc:"LED name"`
	Source      string `json:"source" example:"power" doc:"Indicator source name"`
	Brightness  int    `json:"brightness" example:"50" doc:"Requested brightness"`
	Color       string `json:"color" example:"#FF8000" doc:"Requested color"`
	Commands    int    `json:"commands" example:"5" doc:"Number of commands written"`
	WriteErrors int    `json:"write_errors" example:"0" doc:"Number of failed writes"`
	Timestamp   string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for SettingAppliedEvent.
func (e SettingAppliedEvent) Type() uint32 { return TypeSettingApplied }

// RunStartedEvent is published when the startup driver begins a batch.
type RunStartedEvent struct {
	RunID      string `json:"run_id" example:"3f0c9a52-8d0e-4f43-9a51-2b0f4c1d7e66" doc:"Identifier shared by the events of one run"`
	LightsFile string `json:"lights_file" example:"lights_conf.json" doc:"Lights configuration being applied"`
	Timestamp  string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for RunStartedEvent.
func (e RunStartedEvent) Type() uint32 { return TypeRunStarted }

// RunCompletedEvent is published when a batch ends, successfully or not.
type RunCompletedEvent struct {
	RunID      string `json:"run_id" example:"3f0c9a52-8d0e-4f43-9a51-2b0f4c1d7e66" doc:"Identifier shared by the events of one run"`
	LightsFile string `json:"lights_file" example:"lights_conf.json" doc:"Lights configuration that was applied"`
	State      string `json:"state" example:"completed" doc:"Final driver state: completed or failed"`
	Applied    int    `json:"applied" example:"3" doc:"Settings applied before the run ended"`
	Error      string `json:"error,omitempty" doc:"Failure reason"`
	DurationMs int64  `json:"duration_ms" example:"12" doc:"Run duration in milliseconds"`
	Timestamp  string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Event timestamp"`
}

// Type returns the event type identifier for RunCompletedEvent.
func (e RunCompletedEvent) Type() uint32 { return TypeRunCompleted }

// ConnectedEvent greets a new event stream subscriber with the current state.
// It is sent directly to the subscriber, never through the bus.
type ConnectedEvent struct {
	Message   string `json:"message" example:"SSE connection established" doc:"Greeting"`
	Device    string `json:"device,omitempty" example:"/proc/acpi/nuc_led" doc:"Device LED commands are written to"`
	State     string `json:"state,omitempty" example:"completed" doc:"State of the last lights batch"`
	Timestamp string `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"Connection timestamp"`
}
