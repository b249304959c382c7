package jobs

import (
	"context"
	"fmt"

	"infinite-experiment/logbook/internal/logging"

	"github.com/robfig/cron/v3"
)

// Scheduler runs background jobs on cron schedules
type Scheduler struct {
	cron *cron.Cron
}

// InitializeJobs schedules the rank sync job. Call Start to begin running it.
func InitializeJobs(ctx context.Context, schedule string, rankSync *RankSyncJob) (*Scheduler, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	_, err := c.AddFunc(schedule, func() {
		if _, err := rankSync.Run(ctx); err != nil {
			logging.Error("Rank sync job failed", "error", err.Error())
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid rank sync schedule %q: %w", schedule, err)
	}

	logging.Info("Rank sync job scheduled", "schedule", schedule)
	return &Scheduler{cron: c}, nil
}

// Start begins running scheduled jobs in the background
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and returns a context that is done once running jobs finish
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
