package infrastructure

import (
	"errors"
	"testing"

	"github.com/coreos/go-systemd/v22/daemon"
)

type fakeNotifier struct {
	states []string
	sent   bool
	err    error
}

func (f *fakeNotifier) notify(_ bool, state string) (bool, error) {
	f.states = append(f.states, state)
	return f.sent, f.err
}

func newTestHeartbeat(notifier *fakeNotifier, logger *mockLogger) *SystemdHeartbeat {
	h := NewSystemdHeartbeat(logger)
	h.notify = notifier.notify
	return h
}

func TestSystemdHeartbeat_SendsStates(t *testing.T) {
	notifier := &fakeNotifier{sent: true}
	logger := &mockLogger{}
	h := newTestHeartbeat(notifier, logger)

	if err := h.Ready(); err != nil {
		t.Fatalf("Ready failed: %v", err)
	}
	if err := h.Ping(); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	expected := []string{daemon.SdNotifyReady, daemon.SdNotifyWatchdog}
	if len(notifier.states) != len(expected) {
		t.Fatalf("Expected states %v, got %v", expected, notifier.states)
	}
	for i := range expected {
		if notifier.states[i] != expected[i] {
			t.Errorf("Expected state %q at %d, got %q", expected[i], i, notifier.states[i])
		}
	}
	if len(logger.GetDebugMessages()) != 0 {
		t.Errorf("Expected no debug messages, got %v", logger.GetDebugMessages())
	}
}

func TestSystemdHeartbeat_OutsideSystemd(t *testing.T) {
	notifier := &fakeNotifier{sent: false}
	logger := &mockLogger{}
	h := newTestHeartbeat(notifier, logger)

	if err := h.Ready(); err != nil {
		t.Fatalf("Ready failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := h.Ping(); err != nil {
			t.Fatalf("Ping failed: %v", err)
		}
	}

	if got := len(logger.GetDebugMessages()); got != 1 {
		t.Errorf("Expected the missing supervisor to be logged once, got %d", got)
	}
}

func TestSystemdHeartbeat_NotifyError(t *testing.T) {
	notifyErr := errors.New("connection refused")
	h := newTestHeartbeat(&fakeNotifier{err: notifyErr}, &mockLogger{})

	if err := h.Ping(); !errors.Is(err, notifyErr) {
		t.Errorf("Expected notify error, got %v", err)
	}
}
