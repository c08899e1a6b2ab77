package domain

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

type mockLogger struct {
	mu     sync.Mutex
	errors []string
}

func (m *mockLogger) Debug(_ string, _ ...interface{}) {}
func (m *mockLogger) Info(_ string, _ ...interface{})  {}

func (m *mockLogger) Error(msg string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, fmt.Sprintf(msg, args...))
}

func (m *mockLogger) GetErrors() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.errors...)
}

// mockDevice returns queued results in order and repeats the last one.
type mockDevice struct {
	id      string
	port    PortPath
	results []readResult
	reads   int
	closed  bool
	onRead  func(reads int)
	panics  bool
}

type readResult struct {
	m   Measurement
	err error
}

func newMockDevice(port string, results ...readResult) *mockDevice {
	if len(results) == 0 {
		results = []readResult{{m: Measurement{PM1Atm: 1, PM25Atm: 2, PM10Atm: 3}}}
	}
	return &mockDevice{
		id:      DeviceIDFromPort(PortPath(port)),
		port:    PortPath(port),
		results: results,
	}
}

func (d *mockDevice) ID() string     { return d.id }
func (d *mockDevice) Port() PortPath { return d.port }

func (d *mockDevice) Read(_ context.Context) (Measurement, error) {
	d.reads++
	if d.onRead != nil {
		d.onRead(d.reads)
	}
	if d.panics {
		panic("driver exploded")
	}
	idx := d.reads - 1
	if idx >= len(d.results) {
		idx = len(d.results) - 1
	}
	return d.results[idx].m, d.results[idx].err
}

func (d *mockDevice) Close() error {
	d.closed = true
	return nil
}

type mockSink struct {
	records        []TelemetryRecord
	emitErrs       []error
	emitCalls      int
	reconnectCalls int
	reconnectErr   error
}

func (s *mockSink) Emit(record TelemetryRecord) error {
	s.emitCalls++
	if len(s.emitErrs) > 0 {
		err := s.emitErrs[0]
		s.emitErrs = s.emitErrs[1:]
		if err != nil {
			return err
		}
	}
	s.records = append(s.records, record)
	return nil
}

func (s *mockSink) Reconnect(_ context.Context) error {
	s.reconnectCalls++
	return s.reconnectErr
}

type mockDisplay struct {
	debugs    []string
	summaries []AqiCategory
}

func (d *mockDisplay) Debug(device Device, _ Measurement) {
	d.debugs = append(d.debugs, device.ID())
}

func (d *mockDisplay) Summary(_ Device, _ Measurement, category AqiCategory) {
	d.summaries = append(d.summaries, category)
}

type mockHeartbeat struct {
	readyCalls int
	pingCalls  int
	err        error
}

func (h *mockHeartbeat) Ready() error {
	h.readyCalls++
	return h.err
}

func (h *mockHeartbeat) Ping() error {
	h.pingCalls++
	return h.err
}

type mockClock struct {
	now   time.Time
	waits []time.Duration
}

func (c *mockClock) Now() time.Time { return c.now }

func (c *mockClock) After(d time.Duration) <-chan time.Time {
	c.waits = append(c.waits, d)
	ch := make(chan time.Time, 1)
	ch <- c.now.Add(d)
	return ch
}

type mockLister struct {
	ports []PortInfo
	err   error
}

func (l *mockLister) ListPorts() ([]PortInfo, error) {
	return l.ports, l.err
}

// mockOpener fails for ports listed in failures and opens a mockDevice otherwise.
type mockOpener struct {
	failures map[PortPath]error
	opened   []PortPath
}

func (o *mockOpener) Open(_ context.Context, port PortInfo) (Device, error) {
	o.opened = append(o.opened, port.Path)
	if err, ok := o.failures[port.Path]; ok {
		return nil, err
	}
	return newMockDevice(string(port.Path)), nil
}

var errPermissionDenied = errors.New("Permission denied")
