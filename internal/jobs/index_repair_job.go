package jobs

import (
	"context"
	"log/slog"

	"storefront/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// IndexRepairJob periodically reconciles the order index with the stored
// records, picking up records written by processes that crashed between the
// record write and the index write.
type IndexRepairJob struct {
	handler  commands.RepairIndexCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewIndexRepairJob(handler commands.RepairIndexCommandHandler, schedule string, logger *slog.Logger) *IndexRepairJob {
	return &IndexRepairJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "index_repair_job"),
	}
}

func (j *IndexRepairJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		if _, err := j.handler.Handle(ctx, commands.NewRepairIndexCommand()); err != nil {
			j.logger.ErrorContext(ctx, "Index repair job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Index repair job started", "schedule", j.schedule)
	return nil
}

func (j *IndexRepairJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Index repair job stopped")
}
