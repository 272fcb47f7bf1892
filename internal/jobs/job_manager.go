package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	incompleteOrderAuditJob *IncompleteOrderAuditJob
}

func NewJobManager(incompleteOrders IncompleteOrdersReader, logger *slog.Logger) *JobManager {
	return &JobManager{
		incompleteOrderAuditJob: NewIncompleteOrderAuditJob(incompleteOrders, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.incompleteOrderAuditJob.Start(); err != nil {
		return fmt.Errorf("failed to start incomplete order audit job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.incompleteOrderAuditJob.Stop()
}
