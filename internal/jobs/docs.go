// Package jobs provides scheduled background tasks for the order manager.
//
// Jobs are built on github.com/robfig/cron/v3 with the six-field syntax that
// includes seconds.
//
// # Available Jobs
//
// TicketMetricsJob summarizes the support tickets per status and pushes the
// counts and average amounts to the metrics adapter. It runs once at start and
// then on its schedule (every thirty seconds by default).
//
// # Usage
//
//	jobManager := jobs.NewJobManager(summaryHandler, metrics, cfg.TicketMetricsSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed refresh is logged and keeps the previous gauge values. An invalid
// schedule makes StartAll fail.
package jobs
