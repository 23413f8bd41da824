// Package logging provides structured logging with per-module log level configuration.
//
// # Overview
//
// Loggers are plain *slog.Logger values. Output is routed automatically:
//   - to stdout when a terminal, pipe, or file is connected
//   - to the systemd journal when journald is available (SYSLOG_IDENTIFIER=nucled)
//   - to an in-memory ring buffer served by the HTTP API
//
// # Usage
//
// Initialize once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",
//		Format: "text",
//		Modules: map[string]string{
//			"led": "debug",
//		},
//	})
//
// Then get a logger per module:
//
//	logger := logging.GetLogger("startup")
//	logger.Info("Applying lights", "file", path)
//
// # Run log
//
// The startup driver additionally writes a plain-text log file that is
// truncated at the start of every run:
//
//	runLog, err := logging.OpenRunLog("log")
//	defer runLog.Close()
//	logger := runLog.Tee(logging.GetLogger("startup"))
//
// # Viewing Logs
//
//	journalctl -t nucled
//	journalctl -t nucled MODULE=led
package logging
