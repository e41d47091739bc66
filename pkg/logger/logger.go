// Package logger provides leveled logging for the setup tooling.
//
// It wraps charmbracelet/log behind simple printf-style functions so the
// rest of the code never deals with logger instances directly.
package logger

import (
	"os"

	charmlog "github.com/charmbracelet/log"
)

var std = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: false,
	Level:           charmlog.InfoLevel,
})

// Initialize configures the log level. Accepts "debug", "info", "warn"
// or "error"; anything else keeps the default info level.
func Initialize(level string) error {
	parsed, err := charmlog.ParseLevel(level)
	if err != nil {
		return err
	}
	std.SetLevel(parsed)
	return nil
}

// Info logs informational messages.
func Info(message string, args ...interface{}) {
	std.Infof(message, args...)
}

// Warn logs warning messages.
func Warn(message string, args ...interface{}) {
	std.Warnf(message, args...)
}

// Error logs error messages.
func Error(message string, args ...interface{}) {
	std.Errorf(message, args...)
}

// Debug logs debug messages.
func Debug(message string, args ...interface{}) {
	std.Debugf(message, args...)
}

// Fatal logs fatal messages and terminates the program.
func Fatal(message string, args ...interface{}) {
	std.Fatalf(message, args...)
}
