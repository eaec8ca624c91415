package jobs

import (
	"context"
	"log/slog"

	"ordermanager/internal/core/application/usecases/queries"
	"ordermanager/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DefaultTicketMetricsSchedule refreshes the gauges every thirty seconds.
const DefaultTicketMetricsSchedule = "*/30 * * * * *"

// TicketStatsSink receives the per-status ticket statistics.
type TicketStatsSink interface {
	SetTicketStats(stats []ports.TicketStatusStats)
}

// TicketMetricsJob periodically summarizes the support tickets and pushes the
// result to a sink, typically the Prometheus gauges.
type TicketMetricsJob struct {
	handler  queries.GetTicketsSummaryQueryHandler
	sink     TicketStatsSink
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewTicketMetricsJob creates the job. An empty schedule falls back to
// DefaultTicketMetricsSchedule. Schedules use the six-field cron syntax with
// seconds.
func NewTicketMetricsJob(
	handler queries.GetTicketsSummaryQueryHandler,
	sink TicketStatsSink,
	schedule string,
	logger *slog.Logger,
) *TicketMetricsJob {
	if schedule == "" {
		schedule = DefaultTicketMetricsSchedule
	}
	return &TicketMetricsJob{
		handler:  handler,
		sink:     sink,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "ticket_metrics_job"),
	}
}

// Start refreshes the gauges once and then on every tick of the schedule.
func (j *TicketMetricsJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.Run(context.Background())
	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Ticket metrics job started", "schedule", j.schedule)
	return nil
}

// Run performs one refresh. Failures are logged and leave the previous values
// in place.
func (j *TicketMetricsJob) Run(ctx context.Context) {
	summary, err := j.handler.Handle(ctx, queries.NewGetTicketsSummaryQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Ticket metrics job failed", "error", err)
		return
	}
	j.sink.SetTicketStats(summary.ByStatus)
}

// Stop stops the ticket metrics job.
func (j *TicketMetricsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Ticket metrics job stopped")
}
