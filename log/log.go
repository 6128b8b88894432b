package log

import (
	"fmt"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/kastheco/spindle/internal/sentry"
)

// Package-level loggers. The TUI owns stdout, so everything goes to a
// file under ~/.config/spindle/. Before Initialize is called they
// discard writes, which keeps tests quiet by default.
var (
	InfoLog    *stdlog.Logger
	WarningLog *stdlog.Logger
	ErrorLog   *stdlog.Logger
)

var logFile *os.File

func init() {
	devNull, _ := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	InfoLog = stdlog.New(devNull, "INFO: ", stdlog.Ldate|stdlog.Ltime|stdlog.Lshortfile)
	WarningLog = stdlog.New(devNull, "WARNING: ", stdlog.Ldate|stdlog.Ltime|stdlog.Lshortfile)
	ErrorLog = stdlog.New(devNull, "ERROR: ", stdlog.Ldate|stdlog.Ltime|stdlog.Lshortfile)
}

// Initialize opens the log file and points the package loggers at it.
// Error and warning output is teed to Sentry when telemetry is active.
// Failures fall back to discarding rather than aborting startup.
func Initialize(telemetryEnabled bool) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve home directory for logging: %v\n", err)
		return
	}
	dir := filepath.Join(homeDir, ".config", "spindle")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log directory: %v\n", err)
		return
	}

	path := filepath.Join(dir, "spindle.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file %s: %v\n", path, err)
		return
	}

	logFile = f
	InfoLog.SetOutput(f)
	if telemetryEnabled {
		WarningLog.SetOutput(sentry.NewWriter(f, sentry.LevelWarning))
		ErrorLog.SetOutput(sentry.NewWriter(f, sentry.LevelError))
	} else {
		WarningLog.SetOutput(f)
		ErrorLog.SetOutput(f)
	}
}

// Close flushes and closes the log file.
func Close() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}
