package led

import (
	"fmt"
	"os"
)

// DefaultControlFile is where the nuc_led kernel module exposes its command interface.
const DefaultControlFile = "/proc/acpi/nuc_led"

// procfs implements Device by writing one line per command to the nuc_led
// control file.
type procfs struct {
	path string
}

// newProcfs creates a control file device for path.
func newProcfs(path string) *procfs {
	return &procfs{path: path}
}

// Write opens the control file, writes the command line and closes it again.
// The file is never created: a missing file means the module is not loaded.
func (p *procfs) Write(cmd Command) (err error) {
	f, err := os.OpenFile(p.path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return newError(ErrDeviceWrite, fmt.Sprintf("failed to open control file %s", p.path), err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = newError(ErrDeviceWrite, fmt.Sprintf("failed to close control file %s", p.path), closeErr)
		}
	}()

	if _, err := f.WriteString(cmd.String() + "\n"); err != nil {
		return newError(ErrDeviceWrite, fmt.Sprintf("failed to write %q", cmd.String()), err)
	}

	return nil
}

// Name returns the control file path.
func (p *procfs) Name() string {
	return p.path
}
