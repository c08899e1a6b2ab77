package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultRetryDelay is how long the loop pauses after an iteration in which
// no device produced a measurement.
const DefaultRetryDelay = time.Second

// Mode selects what the loop does with each measurement.
type Mode struct {
	// Debug renders raw frames and skips classification and telemetry.
	Debug bool

	// LogOnly suppresses the human summary. Telemetry is still written.
	LogOnly bool
}

// PollingLoop owns the discovered devices and drives the
// read, classify, emit and ping cycle over them.
//
// A device read error is logged and the device is tried again on the next
// iteration. A telemetry write error triggers one sink reconnect and one
// retry of the record; if that fails too the loop stops with ErrSink.
type PollingLoop struct {
	devices    []Device
	sink       Sink
	display    Display
	liveness   *LivenessReporter
	clock      Clock
	logger     Logger
	mode       Mode
	retryDelay time.Duration
}

// Run signals readiness and iterates until ctx is cancelled. Devices are
// closed before Run returns. It returns nil on cancellation, ErrNoUsableDevices
// when the loop has nothing to poll, or a wrapped ErrSink on a fatal sink failure.
func (p *PollingLoop) Run(ctx context.Context) error {
	if len(p.devices) == 0 {
		return ErrNoUsableDevices
	}
	defer CloseDevices(p.devices, p.logger)

	p.liveness.Ready()

	for ctx.Err() == nil {
		read, err := p.RunOnce(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		if read > 0 {
			continue
		}

		p.logger.Error("no device returned a measurement, retrying in %s", p.retryDelay)
		select {
		case <-ctx.Done():
		case <-p.clock.After(p.retryDelay):
		}
	}

	return nil
}

// RunOnce performs a single iteration: one liveness ping, then one read per
// device in discovery order. It returns the number of successful reads.
func (p *PollingLoop) RunOnce(ctx context.Context) (int, error) {
	p.liveness.Ping()

	read := 0
	for _, device := range p.devices {
		m, err := p.read(ctx, device)
		if err != nil {
			if ctx.Err() != nil {
				return read, ctx.Err()
			}
			p.logger.Error("%s", err.Error())
			continue
		}
		read++

		if p.mode.Debug {
			p.display.Debug(device, m)
			continue
		}

		category := ClassifyPM25(float64(m.PM25Atm))
		if err := p.emit(ctx, NewTelemetryRecord(device, m, p.clock.Now())); err != nil {
			return read, err
		}
		if !p.mode.LogOnly {
			p.display.Summary(device, m, category)
		}
	}

	return read, nil
}

// read fetches one measurement, turning a panicking driver into a ReadError.
func (p *PollingLoop) read(ctx context.Context, device Device) (m Measurement, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			p.logger.Error("panic while reading %s: %v", device.ID(), rec)
			err = &ReadError{DeviceID: device.ID(), Err: fmt.Errorf("panic: %v", rec)}
		}
	}()

	m, err = device.Read(ctx)
	if err != nil {
		return Measurement{}, &ReadError{DeviceID: device.ID(), Err: err}
	}
	return m, nil
}

func (p *PollingLoop) emit(ctx context.Context, record TelemetryRecord) error {
	err := p.sink.Emit(record)
	if err == nil {
		return nil
	}

	id := record.Tags[TagID]
	p.logger.Error("error on writing telemetry for %s: %s", id, err.Error())
	if reconnectErr := p.sink.Reconnect(ctx); reconnectErr != nil {
		return fmt.Errorf("%w: %w", ErrSink, errors.Join(err, reconnectErr))
	}
	if err := p.sink.Emit(record); err != nil {
		return fmt.Errorf("%w: %w", ErrSink, err)
	}
	p.logger.Info("telemetry sink recovered, record for %s written", id)
	return nil
}

// NewPollingLoop creates a loop over devices, which it takes ownership of.
func NewPollingLoop(
	devices []Device,
	sink Sink,
	display Display,
	liveness *LivenessReporter,
	clock Clock,
	logger Logger,
	mode Mode,
) *PollingLoop {
	return &PollingLoop{
		devices:    devices,
		sink:       sink,
		display:    display,
		liveness:   liveness,
		clock:      clock,
		logger:     logger,
		mode:       mode,
		retryDelay: DefaultRetryDelay,
	}
}

// WithRetryDelay overrides DefaultRetryDelay.
func (p *PollingLoop) WithRetryDelay(d time.Duration) *PollingLoop {
	p.retryDelay = d
	return p
}
