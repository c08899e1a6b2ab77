package domain

// Measurement is one decoded PMS7003 data frame. Concentrations are in µg/m³,
// particle counts are per 0.1 L of air.
type Measurement struct {
	HeaderHigh  byte
	HeaderLow   byte
	FrameLength uint16

	PM1CF1  uint16
	PM25CF1 uint16
	PM10CF1 uint16

	PM1Atm  uint16
	PM25Atm uint16
	PM10Atm uint16

	Count03 uint16
	Count05 uint16
	Count1  uint16
	Count25 uint16
	Count5  uint16
	Count10 uint16

	Reserved uint16
	Checksum uint16
}

// FieldName is the telemetry name of a measurement attribute.
type FieldName string

// Telemetry field names.
const (
	FieldPM1CF1  FieldName = "pm1_0_cf1"
	FieldPM25CF1 FieldName = "pm2_5_cf1"
	FieldPM10CF1 FieldName = "pm10_0_cf1"
	FieldPM1Atm  FieldName = "pm1_0_atm"
	FieldPM25Atm FieldName = "pm2_5_atm"
	FieldPM10Atm FieldName = "pm10_0_atm"
)

// TelemetryFieldNames is the complete set of attributes exported as telemetry,
// in emission order.
var TelemetryFieldNames = [...]FieldName{
	FieldPM1CF1,
	FieldPM25CF1,
	FieldPM10CF1,
	FieldPM1Atm,
	FieldPM25Atm,
	FieldPM10Atm,
}

// Field is a single named telemetry value.
type Field struct {
	Name  FieldName
	Value uint16
}

// TelemetryFields returns the PM concentration attributes of the measurement.
// Particle counts, header bytes and checksum are never exported.
func (m Measurement) TelemetryFields() []Field {
	return []Field{
		{Name: FieldPM1CF1, Value: m.PM1CF1},
		{Name: FieldPM25CF1, Value: m.PM25CF1},
		{Name: FieldPM10CF1, Value: m.PM10CF1},
		{Name: FieldPM1Atm, Value: m.PM1Atm},
		{Name: FieldPM25Atm, Value: m.PM25Atm},
		{Name: FieldPM10Atm, Value: m.PM10Atm},
	}
}
