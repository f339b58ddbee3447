// Package jobs provides the scheduled background tasks of the dispatch
// service, built on github.com/robfig/cron/v3.
package jobs

import (
	"fmt"
	"time"

	"dispatch/internal/core/application/usecases/commands"

	"go.uber.org/zap"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	staleOrderJob *StaleOrderJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(
	cancelStaleOrdersHandler commands.CancelStaleOrdersCommandHandler,
	staleSweepSchedule string,
	orderStaleAfter time.Duration,
	logger *zap.Logger,
) *JobManager {
	return &JobManager{
		staleOrderJob: NewStaleOrderJob(cancelStaleOrdersHandler, staleSweepSchedule, orderStaleAfter, logger),
	}
}

// StartAll starts every scheduled job. Returns an error if any job fails
// to start, stopping the ones already running.
func (jm *JobManager) StartAll() error {
	if err := jm.staleOrderJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale order job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleOrderJob.Stop()
}
