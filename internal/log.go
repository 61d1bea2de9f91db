package internal

import (
	"log"
	"os"
)

// LogLevel is the logging verbosity threshold
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Logger provides leveled logging on top of the standard logger.
// Per-column classification detail lives at Debug so normal runs
// stay readable.
type Logger struct {
	level LogLevel
}

// NewLogger creates a logger with the given verbosity threshold
func NewLogger(level LogLevel) *Logger {
	return &Logger{level: level}
}

// NewDefaultLogger reads the threshold from LOG_LEVEL, defaulting to
// INFO for unknown or unset values.
func NewDefaultLogger() *Logger {
	level := LogLevelInfo
	switch os.Getenv("LOG_LEVEL") {
	case "ERROR":
		level = LogLevelError
	case "WARN":
		level = LogLevelWarn
	case "DEBUG":
		level = LogLevelDebug
	}
	return &Logger{level: level}
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	if l.level >= LogLevelError {
		log.Printf("[ERROR] "+format, args...)
	}
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.level >= LogLevelWarn {
		log.Printf("[WARN] "+format, args...)
	}
}

// Info logs info messages
func (l *Logger) Info(format string, args ...interface{}) {
	if l.level >= LogLevelInfo {
		log.Printf("[INFO] "+format, args...)
	}
}

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level >= LogLevelDebug {
		log.Printf("[DEBUG] "+format, args...)
	}
}

// GetLevel returns the current threshold
func (l *Logger) GetLevel() LogLevel {
	return l.level
}

// DefaultLogger is the process-wide logger
var DefaultLogger = NewDefaultLogger()
