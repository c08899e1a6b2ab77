package domain

// Heartbeat is the supervisor notification protocol.
type Heartbeat interface {
	// Ready tells the supervisor that startup has completed.
	Ready() error
	// Ping tells the supervisor that the process is still alive.
	Ping() error
}

// LivenessReporter signals readiness once and liveness on every loop iteration.
// Heartbeat failures are logged and never interrupt the caller.
type LivenessReporter struct {
	heartbeat Heartbeat
	logger    Logger
	ready     bool
}

// Ready signals readiness. Calls after the first one are ignored.
func (l *LivenessReporter) Ready() {
	if l.ready {
		return
	}
	l.ready = true
	if err := l.heartbeat.Ready(); err != nil {
		l.logger.Error("error on signalling readiness: %s", err.Error())
	}
}

// Ping signals liveness.
func (l *LivenessReporter) Ping() {
	if err := l.heartbeat.Ping(); err != nil {
		l.logger.Error("error on sending heartbeat: %s", err.Error())
	}
}

// NewLivenessReporter creates a LivenessReporter over the given heartbeat.
func NewLivenessReporter(heartbeat Heartbeat, logger Logger) *LivenessReporter {
	return &LivenessReporter{
		heartbeat: heartbeat,
		logger:    logger,
	}
}
