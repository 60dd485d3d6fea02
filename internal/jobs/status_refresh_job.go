package jobs

import (
	"context"
	"log/slog"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// StatusRefreshJob re-reads every displayable order on a schedule so that
// cached shipping statuses are rewritten even when nobody opens the tracking page.
type StatusRefreshJob struct {
	handler  queries.ListValidOrdersQueryHandler
	clock    kernel.Clock
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStatusRefreshJob creates the job. schedule is a standard five-field cron
// expression or a descriptor such as "@every 1h".
func NewStatusRefreshJob(
	handler queries.ListValidOrdersQueryHandler,
	clock kernel.Clock,
	schedule string,
	logger *slog.Logger,
) *StatusRefreshJob {
	return &StatusRefreshJob{
		handler:  handler,
		clock:    clock,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "status_refresh_job"),
	}
}

// RunOnce performs a single refresh pass and returns the number of orders visited.
func (j *StatusRefreshJob) RunOnce(ctx context.Context) (int, error) {
	query, err := queries.NewListValidOrdersQuery(j.clock.Now())
	if err != nil {
		return 0, err
	}

	orders, err := j.handler.Handle(ctx, query)
	if err != nil {
		return 0, err
	}
	return len(orders), nil
}

func (j *StatusRefreshJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		visited, err := j.RunOnce(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Status refresh job failed", "error", err)
			return
		}
		j.logger.DebugContext(ctx, "Status refresh job finished", "orders", visited)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Status refresh job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running pass to finish.
func (j *StatusRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Status refresh job stopped")
}
