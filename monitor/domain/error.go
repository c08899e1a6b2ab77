package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSerialPorts is returned when discovery found no candidate ports at all.
	ErrNoSerialPorts = errors.New("no serial devices found")

	// ErrNoUsableDevices is returned when every candidate port failed discovery.
	ErrNoUsableDevices = errors.New("no PMS7003 devices found")

	// ErrSink marks a telemetry write that could not be completed even after
	// the sink was reconnected. The polling loop stops on it.
	ErrSink = errors.New("telemetry sink failure")

	// ErrValidation is a sentinel error used to indicate configuration validation failures.
	// It is wrapped with details about the offending value.
	ErrValidation = errors.New("validation failed")
)

// ReadError describes a failed measurement read on a single device.
type ReadError struct {
	DeviceID string
	Err      error
}

// Error implements the error interface.
func (e *ReadError) Error() string {
	return fmt.Sprintf("reading from %s: %s", e.DeviceID, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ReadError) Unwrap() error {
	return e.Err
}
