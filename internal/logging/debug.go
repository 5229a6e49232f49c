package logging

import (
	"fmt"
	"os"
)

var enabled bool

// Enable turns debug tracing on for the rest of the process, regardless of
// the environment. Used by the --debug flag.
func Enable() {
	enabled = true
}

// DebugEnabled returns true if debug mode is enabled via Enable or the
// THUNTER_DEBUG environment variable
func DebugEnabled() bool {
	return enabled || os.Getenv("THUNTER_DEBUG") != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintln(os.Stderr, args...)
	}
}
