package infrastructure

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/influxdata/line-protocol/v2/lineprotocol"

	monitorDomain "github.com/samoilenko/aqmonitor/monitor/domain"
)

// DefaultMeasurement is the InfluxDB measurement every record is written under.
const DefaultMeasurement = "particulate_matter"

// LineWriter is the destination of encoded telemetry lines.
type LineWriter interface {
	Write(data []byte) error
	Reconnect(ctx context.Context) error
}

// InfluxLogger encodes telemetry records as InfluxDB line protocol.
type InfluxLogger struct {
	writer      LineWriter
	measurement string
}

// Measurement returns the InfluxDB measurement name.
func (l *InfluxLogger) Measurement() string {
	return l.measurement
}

// Emit encodes the record as a single line and appends it to the writer.
// Tags are written in key order, fields in record order.
func (l *InfluxLogger) Emit(record monitorDomain.TelemetryRecord) error {
	var enc lineprotocol.Encoder
	enc.SetPrecision(lineprotocol.Nanosecond)
	enc.StartLine(l.measurement)
	for _, key := range slices.Sorted(maps.Keys(record.Tags)) {
		enc.AddTag(key, record.Tags[key])
	}
	for _, field := range record.Fields {
		enc.AddField(string(field.Name), lineprotocol.IntValue(int64(field.Value)))
	}
	enc.EndLine(record.Time)

	if err := enc.Err(); err != nil {
		return fmt.Errorf("encoding telemetry record: %w", err)
	}
	return l.writer.Write(enc.Bytes())
}

// Reconnect reopens the underlying writer.
func (l *InfluxLogger) Reconnect(ctx context.Context) error {
	return l.writer.Reconnect(ctx)
}

// NewInfluxLogger creates an InfluxLogger writing DefaultMeasurement records.
func NewInfluxLogger(writer LineWriter) *InfluxLogger {
	return &InfluxLogger{
		writer:      writer,
		measurement: DefaultMeasurement,
	}
}
