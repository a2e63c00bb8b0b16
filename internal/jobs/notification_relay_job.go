package jobs

import (
	"context"
	"log/slog"
	"sync"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultRelaySchedule runs the relay every five seconds.
const DefaultRelaySchedule = "*/5 * * * * *"

// RelayHandler delivers one batch of outbox messages.
type RelayHandler interface {
	Handle(ctx context.Context, cmd commands.RelayNotificationsCommand) (commands.RelayResult, error)
}

// RelayConfig controls the notification relay.
type RelayConfig struct {
	Schedule    string
	BatchSize   int
	MaxAttempts int
}

// NotificationRelayJob drains the notification outbox on a cron schedule.
type NotificationRelayJob struct {
	handler RelayHandler
	config  RelayConfig
	metrics *metrics.Metrics
	cron    *cron.Cron
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

func NewNotificationRelayJob(
	handler RelayHandler,
	config RelayConfig,
	m *metrics.Metrics,
	logger *slog.Logger,
) *NotificationRelayJob {
	if config.Schedule == "" {
		config.Schedule = DefaultRelaySchedule
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &NotificationRelayJob{
		handler: handler,
		config:  config,
		metrics: m,
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger.With("component", "notification_relay_job"),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start schedules the relay. Overlapping runs are skipped.
func (j *NotificationRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.config.Schedule, func() { j.RunOnce(j.ctx) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(j.ctx, "Notification relay job started", "schedule", j.config.Schedule)
	return nil
}

// RunOnce relays a single batch.
func (j *NotificationRelayJob) RunOnce(ctx context.Context) {
	cmd, err := commands.NewRelayNotificationsCommand(j.config.BatchSize, j.config.MaxAttempts)
	if err != nil {
		j.metrics.RelayRuns.WithLabelValues("error").Inc()
		j.logger.ErrorContext(ctx, "Notification relay misconfigured", "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	j.metrics.ObserveRelay(result.Delivered, result.Retrying, result.Failed)
	if err != nil {
		j.metrics.RelayRuns.WithLabelValues("error").Inc()
		if ctx.Err() == nil {
			j.logger.ErrorContext(ctx, "Notification relay job failed", "error", err)
		}
		return
	}
	j.metrics.RelayRuns.WithLabelValues("ok").Inc()

	if result.Retrying > 0 || result.Failed > 0 {
		j.logger.WarnContext(ctx, "Notifications not delivered",
			"delivered", result.Delivered,
			"retrying", result.Retrying,
			"failed", result.Failed,
		)
	}
}

// Stop cancels a running batch and waits for it to return.
func (j *NotificationRelayJob) Stop() {
	j.once.Do(func() {
		j.cancel()
		<-j.cron.Stop().Done()
		j.logger.InfoContext(context.Background(), "Notification relay job stopped")
	})
}
