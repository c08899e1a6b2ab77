package infrastructure

import (
	"context"
	"fmt"
	"time"

	"go.bug.st/serial"

	monitorDomain "github.com/samoilenko/aqmonitor/monitor/domain"
)

// SerialOpener opens serial ports and checks that a PMS7003 answers on them.
type SerialOpener struct {
	baudRate    monitorDomain.BaudRate
	readTimeout monitorDomain.ReadTimeout
	logger      monitorDomain.Logger
}

// Open connects to the port using 8N1 framing and reads one frame.
// The port is closed again when no valid frame arrives.
func (o *SerialOpener) Open(ctx context.Context, port monitorDomain.PortInfo) (monitorDomain.Device, error) {
	conn, err := serial.Open(string(port.Path), &serial.Mode{
		BaudRate: int(o.baudRate),
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, err
	}

	if err := conn.SetReadTimeout(time.Duration(o.readTimeout)); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("setting read timeout: %w", err)
	}
	if err := conn.ResetInputBuffer(); err != nil {
		o.logger.Debug("error on resetting input buffer of %s: %s", port.Path, err.Error())
	}

	device := NewPMS7003Device(port.Path, conn)
	if _, err := device.Read(ctx); err != nil {
		if closeErr := device.Close(); closeErr != nil {
			o.logger.Error("error on closing %s: %s", port.Path, closeErr.Error())
		}
		return nil, err
	}
	return device, nil
}

// NewSerialOpener creates a SerialOpener.
func NewSerialOpener(baudRate monitorDomain.BaudRate, readTimeout monitorDomain.ReadTimeout, logger monitorDomain.Logger) *SerialOpener {
	return &SerialOpener{
		baudRate:    baudRate,
		readTimeout: readTimeout,
		logger:      logger,
	}
}
