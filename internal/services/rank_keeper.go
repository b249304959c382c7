package services

import (
	"context"
	"time"

	"infinite-experiment/logbook/internal/db/repositories"
	"infinite-experiment/logbook/internal/logging"
	"infinite-experiment/logbook/internal/metrics"
	gormModels "infinite-experiment/logbook/internal/models/gorm"
	"infinite-experiment/logbook/internal/rank"
)

// RankReport is a pilot's rank recomputed from the flights table
type RankReport struct {
	PilotID  string
	Totals   repositories.PilotTotals
	Result   rank.Result
	State    *gormModels.PilotRank // nil while the pilot has no flights
	Previous rank.Rank             // stored rank before reconciliation, empty if none
	Changed  bool                  // stored row differed from the computed rank
	Promoted bool
}

// RankKeeper keeps pilot_ranks in line with the flights table
type RankKeeper struct {
	flights *repositories.FlightRepository
	ranks   *repositories.PilotRankRepository
	locks   *PilotLocks
	metrics *metrics.MetricsRegistry
	now     func() time.Time
}

func NewRankKeeper(
	flights *repositories.FlightRepository,
	ranks *repositories.PilotRankRepository,
	locks *PilotLocks,
	metricsReg *metrics.MetricsRegistry,
) *RankKeeper {
	return &RankKeeper{
		flights: flights,
		ranks:   ranks,
		locks:   locks,
		metrics: metricsReg,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Reconcile recomputes the rank of pilotID and repairs the stored row if it drifted
func (k *RankKeeper) Reconcile(ctx context.Context, pilotID string) (*RankReport, error) {
	unlock := k.locks.Lock(pilotID)
	defer unlock()

	return k.reconcileLocked(ctx, pilotID)
}

// Inspect evaluates the pilot's rank from the flights table and reports the stored row as is
func (k *RankKeeper) Inspect(ctx context.Context, pilotID string) (*RankReport, error) {
	totals, err := k.flights.Totals(ctx, pilotID)
	if err != nil {
		return nil, storageError("failed to load flight totals", err)
	}

	state, err := k.ranks.Get(ctx, pilotID)
	if err != nil {
		return nil, storageError("failed to load pilot rank", err)
	}

	report := &RankReport{
		PilotID: pilotID,
		Totals:  totals,
		Result:  rank.Evaluate(totals.Flights, totals.Minutes),
		State:   state,
	}
	if state != nil {
		report.Previous = state.Rank
		report.Changed = state.Rank != report.Result.Current
	}
	return report, nil
}

// reconcileLocked expects the caller to hold the pilot lock
func (k *RankKeeper) reconcileLocked(ctx context.Context, pilotID string) (*RankReport, error) {
	totals, err := k.flights.Totals(ctx, pilotID)
	if err != nil {
		return nil, storageError("failed to load flight totals", err)
	}

	report := &RankReport{
		PilotID: pilotID,
		Totals:  totals,
		Result:  rank.Evaluate(totals.Flights, totals.Minutes),
	}

	state, err := k.ranks.Get(ctx, pilotID)
	if err != nil {
		return nil, storageError("failed to load pilot rank", err)
	}
	if state != nil {
		report.Previous = state.Rank
	}

	if totals.Flights == 0 {
		report.State = state
		return report, nil
	}

	if state != nil && state.Rank == report.Result.Current {
		report.State = state
		return report, nil
	}

	next := &gormModels.PilotRank{
		PilotID:       pilotID,
		Rank:          report.Result.Current,
		LastPromotion: k.now(),
	}
	if err := k.ranks.Upsert(ctx, next); err != nil {
		return nil, storageError("failed to store pilot rank", err)
	}

	report.State = next
	report.Changed = state != nil
	report.Promoted = state != nil && rank.Index(next.Rank) > rank.Index(state.Rank)

	if report.Promoted {
		k.metrics.PromotionsTotal.WithLabelValues(string(next.Rank)).Inc()
		logging.Info("Pilot promoted",
			"pilot_id", pilotID,
			"from", state.Rank,
			"to", next.Rank,
			"flights", totals.Flights,
			"minutes", totals.Minutes,
		)
	}

	return report, nil
}
