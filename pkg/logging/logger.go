// Package logging provides structured logging for the
// conformance module with JSON, console, and multi-destination
// output, plus a dedicated diagnostics channel for harness
// warnings that must not surface as failures.
package logging

// Logger defines the interface for structured harness logging.
type Logger interface {
	// Info logs an informational message.
	Info(msg string, fields ...Field)

	// Warn logs a warning message.
	Warn(msg string, fields ...Field)

	// Error logs an error message.
	Error(msg string, fields ...Field)

	// Debug logs a debug-level message.
	Debug(msg string, fields ...Field)

	// WithFields returns a Logger with additional default
	// fields attached to every subsequent log entry.
	WithFields(fields ...Field) Logger

	// LogDiagnostic records a harness diagnostic (e.g., a
	// done() call or assertion arriving after its test case
	// finalized). Diagnostics are informational: they never
	// alter test results.
	LogDiagnostic(d Diagnostic)

	// Close flushes any buffers and releases resources.
	Close() error
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value any
}

// Diagnostic captures a non-fatal harness warning.
type Diagnostic struct {
	Timestamp string `json:"timestamp"`

	// Kind classifies the diagnostic (e.g., "late_done",
	// "late_assertion").
	Kind string `json:"kind"`

	// Test is the name of the test case the diagnostic
	// refers to.
	Test string `json:"test"`

	// Detail is a human-readable explanation.
	Detail string `json:"detail"`
}

// LogLevel represents logging severity levels.
type LogLevel int

const (
	// LevelDebug is the most verbose level.
	LevelDebug LogLevel = iota
	// LevelInfo is the default level.
	LevelInfo
	// LevelWarn indicates potential issues.
	LevelWarn
	// LevelError indicates failures.
	LevelError
)

// String returns the string representation of a log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
