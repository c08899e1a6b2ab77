package domain

import (
	"fmt"
	"log"
)

// Logger defines the contract for logging operations with different severity levels.
type Logger interface {
	// Debug logs a diagnostic message. It is discarded unless debug output is enabled.
	Debug(msg string, args ...interface{})
	// Info logs an informational message with optional formatted arguments.
	Info(msg string, args ...interface{})
	// Error logs an error message with optional formatted arguments.
	Error(msg string, args ...interface{})
}

// StdLogger implements the Logger interface using Go's standard log package.
type StdLogger struct {
	logger *log.Logger
	debug  bool
}

// Debug logs a message with DEBUG prefix when debug output is enabled.
func (l *StdLogger) Debug(msg string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.logger.Printf("DEBUG: %s", fmt.Sprintf(msg, args...))
}

// Info logs an informational message with INFO prefix.
func (l *StdLogger) Info(msg string, args ...interface{}) {
	l.logger.Printf("INFO: %s", fmt.Sprintf(msg, args...))
}

// Error logs an error message with ERROR prefix.
func (l *StdLogger) Error(msg string, args ...interface{}) {
	l.logger.Printf("ERROR: %s", fmt.Sprintf(msg, args...))
}

// NewStdLogger wraps the provided standard logger. Debug messages are emitted
// only when debug is true.
func NewStdLogger(l *log.Logger, debug bool) *StdLogger {
	return &StdLogger{logger: l, debug: debug}
}
