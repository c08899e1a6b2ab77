package domain

import (
	"context"
	"time"
)

// DeviceType is the value of the "type" tag on every telemetry record.
const DeviceType = "PMS7003"

// Telemetry tag keys.
const (
	TagType = "type"
	TagID   = "id"
)

// TelemetryRecord is one time-series entry for a single device reading.
type TelemetryRecord struct {
	Fields []Field
	Tags   map[string]string
	Time   time.Time
}

// NewTelemetryRecord builds the record for a measurement read from device.
func NewTelemetryRecord(device Device, m Measurement, at time.Time) TelemetryRecord {
	return TelemetryRecord{
		Fields: m.TelemetryFields(),
		Tags: map[string]string{
			TagType: DeviceType,
			TagID:   device.ID(),
		},
		Time: at,
	}
}

// Sink is the append-only telemetry destination.
type Sink interface {
	// Emit appends a record.
	Emit(record TelemetryRecord) error
	// Reconnect re-opens the destination after a failed write.
	Reconnect(ctx context.Context) error
}
