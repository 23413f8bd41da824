package led

import "sync"

// Recorder is an in-memory Device that keeps every command it receives.
// It backs plan output and tests.
type Recorder struct {
	mu       sync.Mutex
	commands []Command
	fail     func(Command) error
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// FailWith makes Write return fn's result for every command. The command is
// recorded either way.
func (r *Recorder) FailWith(fn func(Command) error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail = fn
}

// Write records cmd.
func (r *Recorder) Write(cmd Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.commands = append(r.commands, cmd)
	if r.fail != nil {
		return r.fail(cmd)
	}
	return nil
}

// Name identifies the recorder.
func (r *Recorder) Name() string {
	return "memory"
}

// Commands returns a copy of the recorded commands.
func (r *Recorder) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Lines returns the recorded commands rendered as control file lines.
func (r *Recorder) Lines() []string {
	cmds := r.Commands()
	lines := make([]string, len(cmds))
	for i, c := range cmds {
		lines[i] = c.String()
	}
	return lines
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = nil
}
