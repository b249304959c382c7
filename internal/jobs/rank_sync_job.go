package jobs

import (
	"context"
	"fmt"
	"time"

	"infinite-experiment/logbook/internal/db/repositories"
	"infinite-experiment/logbook/internal/logging"
	"infinite-experiment/logbook/internal/metrics"
	"infinite-experiment/logbook/internal/services"
)

// RankSyncJob recomputes every pilot's rank from the flights table and repairs drifted pilot_ranks rows
type RankSyncJob struct {
	flights *repositories.FlightRepository
	keeper  *services.RankKeeper
	metrics *metrics.MetricsRegistry
}

// NewRankSyncJob creates a new rank sync job instance
func NewRankSyncJob(
	flights *repositories.FlightRepository,
	keeper *services.RankKeeper,
	metricsReg *metrics.MetricsRegistry,
) *RankSyncJob {
	return &RankSyncJob{
		flights: flights,
		keeper:  keeper,
		metrics: metricsReg,
	}
}

// SyncResult summarizes one run
type SyncResult struct {
	Pilots   int
	Repaired int
	Failed   int
}

// Run reconciles all pilots. A failure for one pilot does not stop the others.
func (j *RankSyncJob) Run(ctx context.Context) (SyncResult, error) {
	start := time.Now()
	defer func() {
		j.metrics.RankSyncDuration.Observe(time.Since(start).Seconds())
	}()

	pilots, err := j.flights.DistinctPilots(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("failed to list pilots: %w", err)
	}

	result := SyncResult{Pilots: len(pilots)}
	for _, pilotID := range pilots {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		report, err := j.keeper.Reconcile(ctx, pilotID)
		if err != nil {
			logging.Error("Rank sync failed for pilot", "pilot_id", pilotID, "error", err.Error())
			result.Failed++
			continue
		}
		if report.Changed || report.Previous == "" {
			result.Repaired++
			j.metrics.RankSyncRepaired.Inc()
		}
	}

	logging.Info("Rank sync completed",
		"pilots", result.Pilots,
		"repaired", result.Repaired,
		"failed", result.Failed,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}
