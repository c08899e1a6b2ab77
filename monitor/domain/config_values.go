package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// DefaultLogPath is where telemetry records are appended when no path is configured.
const DefaultLogPath = "measurements.log"

// PortPath is the OS path of a serial port, e.g. /dev/ttyUSB0 or COM3.
// The zero value means "scan every available port".
type PortPath string

// NewPortPath trims the given value and rejects paths containing control characters.
func NewPortPath(value string) (PortPath, error) {
	value = strings.TrimSpace(value)
	if strings.IndexFunc(value, unicode.IsControl) >= 0 {
		return "", fmt.Errorf("%w: port path contains control characters: %q", ErrValidation, value)
	}
	return PortPath(value), nil
}

// LogPath represents a validated file system path for telemetry output.
type LogPath string

// NewLogPath creates a new LogPath.
func NewLogPath(path string) (LogPath, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: log path cannot be empty", ErrValidation)
	}

	cleanPath := filepath.Clean(path)
	if strings.ContainsAny(cleanPath, "<>\"|?*") {
		return "", fmt.Errorf("%w: log path contains invalid characters: %s", ErrValidation, cleanPath)
	}

	return LogPath(cleanPath), nil
}

// BufferSize is the size in bytes of the telemetry write buffer.
type BufferSize uint32

// NewBufferSize creates a new BufferSize instance.
func NewBufferSize(size int) (BufferSize, error) {
	if size <= 0 {
		return 0, fmt.Errorf("%w: buffer size must be greater than 0", ErrValidation)
	}
	return BufferSize(size), nil
}

// FlushInterval is the time between forced flushes of the telemetry buffer.
type FlushInterval time.Duration

// NewFlushInterval creates a new FlushInterval. The interval must be positive.
func NewFlushInterval(val time.Duration) (FlushInterval, error) {
	if val <= 0 {
		return 0, fmt.Errorf("%w: flush interval must be greater than 0", ErrValidation)
	}
	return FlushInterval(val), nil
}

// BaudRate of the serial link.
type BaudRate uint32

// NewBaudRate validates a serial line speed.
func NewBaudRate(val int) (BaudRate, error) {
	if val <= 0 {
		return 0, fmt.Errorf("%w: baud rate must be greater than 0", ErrValidation)
	}
	return BaudRate(val), nil
}

// ReadTimeout bounds how long a single serial read waits for bytes.
type ReadTimeout time.Duration

// NewReadTimeout validates the serial read timeout.
func NewReadTimeout(val time.Duration) (ReadTimeout, error) {
	if val <= 0 {
		return 0, fmt.Errorf("%w: read timeout must be greater than 0", ErrValidation)
	}
	return ReadTimeout(val), nil
}
