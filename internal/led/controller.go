package led

// Device accepts LED commands. Implementations decide where the rendered
// line goes: the kernel control file, a log, or memory.
type Device interface {
	// Write delivers one command. Each call is independent: a failed write
	// leaves the device usable for the next one.
	Write(cmd Command) error

	// Name identifies the device in logs and events (a path for file backed devices).
	Name() string
}
