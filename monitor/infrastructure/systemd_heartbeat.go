package infrastructure

import (
	"sync"

	"github.com/coreos/go-systemd/v22/daemon"

	monitorDomain "github.com/samoilenko/aqmonitor/monitor/domain"
)

// notifyFunc has the signature of daemon.SdNotify.
type notifyFunc func(unsetEnvironment bool, state string) (bool, error)

// SystemdHeartbeat implements the systemd notify protocol.
// Outside of systemd it does nothing.
type SystemdHeartbeat struct {
	notify      notifyFunc
	logger      monitorDomain.Logger
	unsupported sync.Once
}

// Ready sends READY=1.
func (h *SystemdHeartbeat) Ready() error {
	return h.send(daemon.SdNotifyReady)
}

// Ping sends WATCHDOG=1.
func (h *SystemdHeartbeat) Ping() error {
	return h.send(daemon.SdNotifyWatchdog)
}

func (h *SystemdHeartbeat) send(state string) error {
	sent, err := h.notify(false, state)
	if err != nil {
		return err
	}
	if !sent {
		h.unsupported.Do(func() {
			h.logger.Debug("not running under systemd, liveness notifications are disabled")
		})
	}
	return nil
}

// NewSystemdHeartbeat creates a heartbeat that notifies the service manager
// named by $NOTIFY_SOCKET.
func NewSystemdHeartbeat(logger monitorDomain.Logger) *SystemdHeartbeat {
	return &SystemdHeartbeat{
		notify: daemon.SdNotify,
		logger: logger,
	}
}
