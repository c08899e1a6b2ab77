package infrastructure

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	monitorDomain "github.com/samoilenko/aqmonitor/monitor/domain"
)

const (
	frameStartHigh  = 0x42
	frameStartLow   = 0x4d
	frameSize       = 32
	frameDataLength = frameSize - 4

	// maxSyncBytes bounds how much noise is skipped while looking for a frame start.
	maxSyncBytes = 4 * frameSize
)

var (
	// ErrNoResponse is returned when the port delivers no data within the read timeout.
	ErrNoResponse = errors.New("no response from device")

	// ErrWrongDevice is returned when the port delivers data that never contains a PMS7003 frame.
	ErrWrongDevice = errors.New("not a PMS7003 device")

	// ErrInvalidFrame is returned for a frame with a bad length or checksum.
	ErrInvalidFrame = errors.New("invalid frame")
)

type frame [frameSize]byte

// word returns the big-endian 16-bit value at offset.
func (f *frame) word(offset int) uint16 {
	return binary.BigEndian.Uint16(f[offset:])
}

func (f *frame) checksum() uint16 {
	var sum uint16
	for _, b := range f[:frameSize-2] {
		sum += uint16(b)
	}
	return sum
}

func checkFrameLength(f *frame) error {
	if length := f.word(2); length != frameDataLength {
		return fmt.Errorf("%w: frame length %d, expected %d", ErrInvalidFrame, length, frameDataLength)
	}
	return nil
}

func checkFrameChecksum(f *frame) error {
	if got, want := f.checksum(), f.word(frameSize-2); got != want {
		return fmt.Errorf("%w: checksum %#04x, expected %#04x", ErrInvalidFrame, got, want)
	}
	return nil
}

var frameValidators = monitorDomain.WithValidators[frame](
	monitorDomain.ValidatorFunc[frame](checkFrameLength),
	monitorDomain.ValidatorFunc[frame](checkFrameChecksum),
)

func (f *frame) measurement() monitorDomain.Measurement {
	return monitorDomain.Measurement{
		HeaderHigh:  f[0],
		HeaderLow:   f[1],
		FrameLength: f.word(2),
		PM1CF1:      f.word(4),
		PM25CF1:     f.word(6),
		PM10CF1:     f.word(8),
		PM1Atm:      f.word(10),
		PM25Atm:     f.word(12),
		PM10Atm:     f.word(14),
		Count03:     f.word(16),
		Count05:     f.word(18),
		Count1:      f.word(20),
		Count25:     f.word(22),
		Count5:      f.word(24),
		Count10:     f.word(26),
		Reserved:    f.word(28),
		Checksum:    f.word(30),
	}
}

// PMS7003Device reads measurement frames from a PMS7003 sensor in active mode.
type PMS7003Device struct {
	id    string
	port  monitorDomain.PortPath
	conn  io.ReadCloser
	frame frame
}

// ID returns the sensor identifier derived from its port.
func (d *PMS7003Device) ID() string {
	return d.id
}

// Port returns the serial port path.
func (d *PMS7003Device) Port() monitorDomain.PortPath {
	return d.port
}

// Read waits for the next frame, validates it and decodes it.
func (d *PMS7003Device) Read(ctx context.Context) (monitorDomain.Measurement, error) {
	if err := ctx.Err(); err != nil {
		return monitorDomain.Measurement{}, err
	}
	if err := d.sync(); err != nil {
		return monitorDomain.Measurement{}, err
	}
	if err := d.readFull(d.frame[2:]); err != nil {
		return monitorDomain.Measurement{}, err
	}
	if err := frameValidators.Apply(&d.frame); err != nil {
		return monitorDomain.Measurement{}, err
	}
	return d.frame.measurement(), nil
}

// sync consumes bytes until the two frame start bytes have been read.
func (d *PMS7003Device) sync() error {
	var b [1]byte
	var prev byte
	for range maxSyncBytes {
		if err := d.readFull(b[:]); err != nil {
			return err
		}
		if prev == frameStartHigh && b[0] == frameStartLow {
			d.frame[0], d.frame[1] = frameStartHigh, frameStartLow
			return nil
		}
		prev = b[0]
	}
	return ErrWrongDevice
}

// readFull fills buf. A read that returns no data and no error is a timeout.
func (d *PMS7003Device) readFull(buf []byte) error {
	for len(buf) > 0 {
		n, err := d.conn.Read(buf)
		switch {
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: %w", ErrNoResponse, err)
		case err != nil:
			return err
		case n == 0:
			return ErrNoResponse
		}
		buf = buf[n:]
	}
	return nil
}

// Close closes the serial connection.
func (d *PMS7003Device) Close() error {
	return d.conn.Close()
}

// NewPMS7003Device wraps an open serial connection.
func NewPMS7003Device(port monitorDomain.PortPath, conn io.ReadCloser) *PMS7003Device {
	return &PMS7003Device{
		id:   monitorDomain.DeviceIDFromPort(port),
		port: port,
		conn: conn,
	}
}
