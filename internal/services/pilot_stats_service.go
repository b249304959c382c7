package services

import (
	"context"
	"time"

	"infinite-experiment/logbook/internal/common"
	"infinite-experiment/logbook/internal/constants"
	"infinite-experiment/logbook/internal/db/repositories"
	"infinite-experiment/logbook/internal/metrics"
	gormModels "infinite-experiment/logbook/internal/models/gorm"
	"infinite-experiment/logbook/internal/rank"

	"golang.org/x/sync/singleflight"
)

const totalsCacheTTL = time.Minute

// PilotStats is what /mystats shows
type PilotStats struct {
	PilotID string
	Totals  repositories.PilotTotals
	Rank    rank.Result
	Cached  bool
}

type PilotStatsService struct {
	flights *repositories.FlightRepository
	keeper  *RankKeeper
	locks   *PilotLocks
	cache   common.CacheInterface
	metrics *metrics.MetricsRegistry
	group   singleflight.Group
}

func NewPilotStatsService(
	flights *repositories.FlightRepository,
	keeper *RankKeeper,
	locks *PilotLocks,
	cache common.CacheInterface,
	metricsReg *metrics.MetricsRegistry,
) *PilotStatsService {
	return &PilotStatsService{
		flights: flights,
		keeper:  keeper,
		locks:   locks,
		cache:   cache,
		metrics: metricsReg,
	}
}

// GetStats returns flight count and minutes for a pilot. Pilots without flights get zero totals.
func (s *PilotStatsService) GetStats(ctx context.Context, pilotID string) (*PilotStats, error) {
	key := totalsCacheKey(pilotID)
	pattern := string(constants.CachePrefixPilotTotals)

	if val, found := s.cache.Get(key); found {
		var totals repositories.PilotTotals
		if common.DecodeCached(val, &totals) {
			s.metrics.CacheHitsTotal.WithLabelValues(pattern).Inc()
			return newPilotStats(pilotID, totals, true), nil
		}
	}
	s.metrics.CacheMissesTotal.WithLabelValues(pattern).Inc()

	// The load is shared by every waiter on key, so one caller's deadline must not cancel it
	loadCtx := context.WithoutCancel(ctx)

	val, err, _ := s.group.Do(key, func() (interface{}, error) {
		// Holding the pilot lock orders this read+Set against LogFlight's insert+Delete,
		// so totals from before a new flight are never cached after it
		unlock := s.locks.Lock(pilotID)
		defer unlock()

		totals, err := s.flights.Totals(loadCtx, pilotID)
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, totals, totalsCacheTTL)
		return totals, nil
	})
	if err != nil {
		return nil, storageError("failed to load pilot stats", err)
	}

	return newPilotStats(pilotID, val.(repositories.PilotTotals), false), nil
}

// GetLastFlight returns the most recent flight of a pilot or ErrNoFlights
func (s *PilotStatsService) GetLastFlight(ctx context.Context, pilotID string) (*gormModels.Flight, error) {
	flight, err := s.flights.Last(ctx, pilotID)
	if err != nil {
		return nil, storageError("failed to load last flight", err)
	}
	if flight == nil {
		return nil, ErrNoFlights
	}
	return flight, nil
}

// CheckRank recomputes the pilot's rank from their flights, repairing the stored rank if needed
func (s *PilotStatsService) CheckRank(ctx context.Context, pilotID string) (*RankReport, error) {
	return s.keeper.Reconcile(ctx, pilotID)
}

// RankStatus recomputes the pilot's rank like CheckRank but never writes pilot_ranks
func (s *PilotStatsService) RankStatus(ctx context.Context, pilotID string) (*RankReport, error) {
	return s.keeper.Inspect(ctx, pilotID)
}

func newPilotStats(pilotID string, totals repositories.PilotTotals, cached bool) *PilotStats {
	return &PilotStats{
		PilotID: pilotID,
		Totals:  totals,
		Rank:    rank.Evaluate(totals.Flights, totals.Minutes),
		Cached:  cached,
	}
}
