package domain

import (
	"context"
	"path/filepath"
)

// Device is an open connection to a particulate matter sensor.
type Device interface {
	// ID returns the identifier of the sensor, derived from its port.
	ID() string
	// Port returns the serial port the sensor is attached to.
	Port() PortPath
	// Read blocks until the next measurement frame is available.
	Read(ctx context.Context) (Measurement, error)
	// Close releases the underlying port.
	Close() error
}

// DeviceIDFromPort derives a stable sensor identifier from its port path.
func DeviceIDFromPort(port PortPath) string {
	if port == "" {
		return ""
	}
	return filepath.Base(string(port))
}

// CloseDevices closes every device, logging failures.
func CloseDevices(devices []Device, logger Logger) {
	for _, device := range devices {
		if err := device.Close(); err != nil {
			logger.Error("error on closing %s: %s", device.ID(), err.Error())
		}
	}
}
