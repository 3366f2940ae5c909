package status

import (
	"context"
	"log/slog"
)

// Status is the backend liveness as last observed
type Status int

const (
	Checking Status = iota
	Online
	Offline
)

func (s Status) String() string {
	switch s {
	case Online:
		return "Online"
	case Offline:
		return "Offline"
	default:
		return "Checking..."
	}
}

// HealthChecker is the part of the backend client the monitor needs
type HealthChecker interface {
	Health(ctx context.Context) (bool, error)
}

// Monitor checks backend liveness once per session. It never retries or polls.
type Monitor struct {
	checker HealthChecker
	logger  *slog.Logger
	status  Status
}

func NewMonitor(checker HealthChecker, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{checker: checker, logger: logger, status: Checking}
}

// Check issues one health request and records Online or Offline.
// Errors only show up in the log; the status is the whole answer.
func (m *Monitor) Check(ctx context.Context) Status {
	alive, err := m.checker.Health(ctx)
	switch {
	case err != nil:
		m.logger.Debug("health check failed", slog.Any("error", err))
		m.status = Offline
	case !alive:
		m.logger.Debug("health check returned unexpected status")
		m.status = Offline
	default:
		m.status = Online
	}
	return m.status
}

// Status returns the last observed status, Checking before Check runs
func (m *Monitor) Status() Status {
	return m.status
}
