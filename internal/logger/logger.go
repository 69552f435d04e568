// Package logger provides verbose logging for grokipedia-mcp.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to help users follow each request.
// Stdout is never written to; it carries MCP stdio traffic.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf(false, "[DEBUG] ", "", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf(false, "[INFO] ", "", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	logf(false, "[WARN] ", "", format, args...)
}

// Error prints an error message regardless of verbose mode.
func Error(format string, args ...any) {
	logf(true, "[ERROR] ", "", format, args...)
}

// Entry prefixes every message with a fixed set of key=value fields.
type Entry struct {
	prefix string
}

// With returns an Entry carrying the given key/value pairs.
// An odd trailing key is logged with an empty value.
func With(keyvals ...any) Entry {
	var b strings.Builder
	for i := 0; i < len(keyvals); i += 2 {
		var val any = ""
		if i+1 < len(keyvals) {
			val = keyvals[i+1]
		}
		fmt.Fprintf(&b, "%v=%v ", keyvals[i], val)
	}
	return Entry{prefix: b.String()}
}

// Debug prints a message if verbose mode is enabled.
func (e Entry) Debug(format string, args ...any) {
	logf(false, "[DEBUG] ", e.prefix, format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func (e Entry) Info(format string, args ...any) {
	logf(false, "[INFO] ", e.prefix, format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func (e Entry) Warn(format string, args ...any) {
	logf(false, "[WARN] ", e.prefix, format, args...)
}

// Error prints an error message regardless of verbose mode.
func (e Entry) Error(format string, args ...any) {
	logf(true, "[ERROR] ", e.prefix, format, args...)
}

// logf takes the write lock so concurrent requests never interleave lines.
func logf(always bool, level, prefix, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if always || verbose {
		fmt.Fprint(output, level+prefix+fmt.Sprintf(format, args...)+"\n")
	}
}
