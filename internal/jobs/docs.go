// Package jobs provides scheduled background tasks for the dispatch service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, with a seconds field) and
// are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(relayHandler, jobs.RelayConfig{
//		Schedule:    "*/5 * * * * *",
//		BatchSize:   50,
//		MaxAttempts: 5,
//	}, m, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// NotificationRelayJob moves pending rows of the notification outbox to the
// notification sink. A delivery that fails is retried on the next run until
// the message runs out of attempts, after which it is parked as failed.
package jobs
