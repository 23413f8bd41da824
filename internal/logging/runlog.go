package logging

import (
	"fmt"
	"log/slog"
	"os"
)

// RunLog is a plain-text log file scoped to one startup run. Opening it
// truncates whatever a previous run left behind.
type RunLog struct {
	file    *os.File
	handler slog.Handler
}

// OpenRunLog creates or truncates the file at path.
func OpenRunLog(path string) (*RunLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open run log %s: %w", path, err)
	}

	return &RunLog{
		file:    f,
		handler: slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo}),
	}, nil
}

// Tee returns a logger that writes to both logger and the run log. Attributes
// already bound to logger are not copied into the run log; add them with With
// on the returned logger.
func (r *RunLog) Tee(logger *slog.Logger) *slog.Logger {
	return slog.New(NewMultiHandler(logger.Handler(), r.handler))
}

// Path returns the file the run log writes to.
func (r *RunLog) Path() string {
	return r.file.Name()
}

// Close flushes and closes the run log file.
func (r *RunLog) Close() error {
	return r.file.Close()
}
