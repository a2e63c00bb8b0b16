package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/metrics"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	notificationRelayJob *NotificationRelayJob
}

func NewJobManager(
	relayHandler RelayHandler,
	relayConfig RelayConfig,
	m *metrics.Metrics,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		notificationRelayJob: NewNotificationRelayJob(relayHandler, relayConfig, m, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.notificationRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start notification relay job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.notificationRelayJob.Stop()
}
