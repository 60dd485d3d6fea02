package jobs

import (
	"fmt"
	"log/slog"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
)

// Schedules holds the cron expressions of the background jobs.
type Schedules struct {
	StatusRefresh string
	IndexRepair   string
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	statusRefreshJob *StatusRefreshJob
	indexRepairJob   *IndexRepairJob
}

func NewJobManager(
	listValidOrdersHandler queries.ListValidOrdersQueryHandler,
	repairIndexHandler commands.RepairIndexCommandHandler,
	clock kernel.Clock,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		statusRefreshJob: NewStatusRefreshJob(listValidOrdersHandler, clock, schedules.StatusRefresh, logger),
		indexRepairJob:   NewIndexRepairJob(repairIndexHandler, schedules.IndexRepair, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.indexRepairJob.Start(); err != nil {
		return fmt.Errorf("failed to start index repair job: %w", err)
	}

	if err := jm.statusRefreshJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.indexRepairJob.Stop()
		return fmt.Errorf("failed to start status refresh job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.statusRefreshJob.Stop()
	jm.indexRepairJob.Stop()
}
