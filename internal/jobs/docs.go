// Package jobs provides scheduled background tasks for the order service.
//
// Jobs are built on github.com/robfig/cron/v3 and managed through JobManager:
//
//	jobManager := jobs.NewJobManager(incompleteOrdersHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// IncompleteOrderAuditJob runs every minute. It lists order headers older
// than five minutes that have no items (the result of a partial write the
// client never retried) and logs each one at warn level.
package jobs
