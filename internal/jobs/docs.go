// Package jobs provides scheduled background tasks for the storefront.
//
// Jobs are built on github.com/robfig/cron/v3 with the standard five-field
// parser, so descriptors like "@every 1h" and "@daily" are accepted.
//
// # Available Jobs
//
// 1. StatusRefreshJob - runs the order list query so stale shipping statuses are recomputed and written back
// 2. IndexRepairJob - rebuilds the order index from the stored records
//
// # Usage
//
//	jobManager := jobs.NewJobManager(listValidOrdersHandler, repairIndexHandler, clock, schedules, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// A job that fails to start stops the jobs already started.
package jobs
