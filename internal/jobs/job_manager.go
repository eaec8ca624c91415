package jobs

import (
	"fmt"
	"log/slog"

	"ordermanager/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	ticketMetricsJob *TicketMetricsJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	ticketsSummaryHandler queries.GetTicketsSummaryQueryHandler,
	ticketStats TicketStatsSink,
	ticketMetricsSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		ticketMetricsJob: NewTicketMetricsJob(ticketsSummaryHandler, ticketStats, ticketMetricsSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.ticketMetricsJob.Start(); err != nil {
		return fmt.Errorf("failed to start ticket metrics job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.ticketMetricsJob.Stop()
}
