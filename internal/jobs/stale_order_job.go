package jobs

import (
	"context"
	"time"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StaleOrderJob periodically cancels orders that sat unconfirmed past
// their time-to-live. Cancellation is forced by the platform, so no
// actor permission check applies.
type StaleOrderJob struct {
	handler    commands.CancelStaleOrdersCommandHandler
	staleAfter time.Duration
	schedule   string
	cron       *cron.Cron
	logger     *zap.Logger
}

// NewStaleOrderJob creates the stale order sweeper. schedule is a cron
// expression with a seconds field; staleAfter is how long a pending order
// may wait before the sweep cancels it.
func NewStaleOrderJob(
	handler commands.CancelStaleOrdersCommandHandler,
	schedule string,
	staleAfter time.Duration,
	logger *zap.Logger,
) *StaleOrderJob {
	return &StaleOrderJob{
		handler:    handler,
		staleAfter: staleAfter,
		schedule:   schedule,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With(zap.String("component", "stale_order_job")),
	}
}

// Start schedules the sweep and begins execution.
func (j *StaleOrderJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewCancelStaleOrdersCommand(j.staleAfter)
		if cmdErr != nil {
			j.logger.Error("stale order sweep misconfigured", zap.Error(cmdErr))
			return
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.Error("stale order sweep failed", zap.Error(handleErr))
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("stale order sweep started",
		zap.String("schedule", j.schedule),
		zap.Duration("staleAfter", j.staleAfter))
	return nil
}

// Stop stops the sweep. Already running sweeps finish.
func (j *StaleOrderJob) Stop() {
	j.cron.Stop()
	j.logger.Info("stale order sweep stopped")
}
