package services

import (
	"context"
	"testing"
	"time"

	"infinite-experiment/logbook/internal/common"
	"infinite-experiment/logbook/internal/db"
	"infinite-experiment/logbook/internal/db/repositories"
	"infinite-experiment/logbook/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

type testEnv struct {
	store   *db.Store
	flights *repositories.FlightRepository
	ranks   *repositories.PilotRankRepository
	keeper  *RankKeeper
	log     *FlightLogService
	stats   *PilotStatsService
	cache   *common.CacheService
	metrics *metrics.MetricsRegistry
}

// Setup services over an in-memory database
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := db.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := store.Migrate(); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	metricsReg := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	cache := common.NewCacheService(time.Minute, time.Minute)
	flights := repositories.NewFlightRepository(store.ORM, store.SQL)
	ranks := repositories.NewPilotRankRepository(store.ORM)
	locks := NewPilotLocks()
	keeper := NewRankKeeper(flights, ranks, locks, metricsReg)

	return &testEnv{
		store:   store,
		flights: flights,
		ranks:   ranks,
		keeper:  keeper,
		log:     NewFlightLogService(flights, keeper, locks, cache, metricsReg),
		stats:   NewPilotStatsService(flights, keeper, locks, cache, metricsReg),
		cache:   cache,
		metrics: metricsReg,
	}
}

func sampleEntry(pilotID string, minutes int) FlightEntry {
	return FlightEntry{
		PilotID:      pilotID,
		FlightNumber: "QR007",
		Aircraft:     "B777-300ER",
		Dep:          "OTHH",
		Arr:          "EGLL",
		Gate:         "C5",
		Altitude:     "FL370",
		FlightTime:   minutes,
		PIC:          "<@" + pilotID + ">",
	}
}

// logFlights logs n flights of the given length
func logFlights(t *testing.T, env *testEnv, pilotID string, n, minutes int) *LogResult {
	t.Helper()

	var res *LogResult
	for i := 0; i < n; i++ {
		var err error
		res, err = env.log.LogFlight(context.Background(), sampleEntry(pilotID, minutes))
		if err != nil {
			t.Fatalf("LogFlight failed on flight %d: %v", i+1, err)
		}
	}
	return res
}
