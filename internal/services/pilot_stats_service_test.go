package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	gormModels "infinite-experiment/logbook/internal/models/gorm"
	"infinite-experiment/logbook/internal/rank"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPilotStatsService_GetStats_NoFlights(t *testing.T) {
	env := setupTestEnv(t)

	stats, err := env.stats.GetStats(context.Background(), "nobody")
	require.NoError(t, err)

	assert.Zero(t, stats.Totals.Flights)
	assert.Zero(t, stats.Totals.Minutes)
	assert.Equal(t, rank.CoPilot, stats.Rank.Current)
	assert.False(t, stats.Rank.NearPromotion)
}

func TestPilotStatsService_GetStats_Cached(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	logFlights(t, env, "pilot-1", 3, 50)

	first, err := env.stats.GetStats(ctx, "pilot-1")
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := env.stats.GetStats(ctx, "pilot-1")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Totals, second.Totals)
}

func TestPilotStatsService_GetLastFlight(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	_, err := env.stats.GetLastFlight(ctx, "pilot-1")
	assert.True(t, errors.Is(err, ErrNoFlights))

	logFlights(t, env, "pilot-1", 1, 50)
	entry := sampleEntry("pilot-1", 95)
	entry.FlightNumber = "QR1"
	_, err = env.log.LogFlight(ctx, entry)
	require.NoError(t, err)

	last, err := env.stats.GetLastFlight(ctx, "pilot-1")
	require.NoError(t, err)
	assert.Equal(t, "QR1", last.FlightNumber)
	assert.Equal(t, 95, last.FlightTime)
}

func TestPilotStatsService_CheckRank_RepairsDrift(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	logFlights(t, env, "pilot-1", 30, 15)

	// Corrupt the cached rank
	stale := &gormModels.PilotRank{PilotID: "pilot-1", Rank: rank.CoPilot, LastPromotion: time.Now().UTC()}
	require.NoError(t, env.ranks.Upsert(ctx, stale))

	report, err := env.stats.CheckRank(ctx, "pilot-1")
	require.NoError(t, err)

	assert.Equal(t, rank.EliteCoPilot, report.Result.Current)
	assert.True(t, report.Changed)
	assert.True(t, report.Result.NearPromotion)
	require.NotNil(t, report.Result.Next)
	assert.Equal(t, rank.Captain, report.Result.Next.Rank)

	state, err := env.ranks.Get(ctx, "pilot-1")
	require.NoError(t, err)
	assert.Equal(t, rank.EliteCoPilot, state.Rank)
}

func TestPilotStatsService_CheckRank_NoFlights(t *testing.T) {
	env := setupTestEnv(t)

	report, err := env.stats.CheckRank(context.Background(), "nobody")
	require.NoError(t, err)

	assert.Nil(t, report.State)
	assert.Equal(t, rank.CoPilot, report.Result.Current)
	assert.False(t, report.Result.NearPromotion)

	n, err := env.ranks.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPilotStatsService_GetStats_CallerCancellationDoesNotFailLoad(t *testing.T) {
	env := setupTestEnv(t)
	logFlights(t, env, "pilot-1", 2, 30)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats, err := env.stats.GetStats(ctx, "pilot-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Totals.Flights)
	assert.Equal(t, 60, stats.Totals.Minutes)
}

func TestPilotStatsService_GetStats_NeverCachesTotalsOlderThanALog(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := env.log.LogFlight(ctx, sampleEntry("pilot-1", 10))
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := env.stats.GetStats(ctx, "pilot-1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Whatever is cached now must match the table
	stats, err := env.stats.GetStats(ctx, "pilot-1")
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Totals.Flights)
	assert.Equal(t, 100, stats.Totals.Minutes)
}

func TestPilotStatsService_RankStatus_DoesNotWrite(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	logFlights(t, env, "pilot-1", 30, 15)

	stale := &gormModels.PilotRank{PilotID: "pilot-1", Rank: rank.CoPilot, LastPromotion: time.Now().UTC()}
	require.NoError(t, env.ranks.Upsert(ctx, stale))

	report, err := env.stats.RankStatus(ctx, "pilot-1")
	require.NoError(t, err)
	assert.Equal(t, rank.EliteCoPilot, report.Result.Current)
	assert.Equal(t, rank.CoPilot, report.Previous)
	assert.True(t, report.Changed)

	state, err := env.ranks.Get(ctx, "pilot-1")
	require.NoError(t, err)
	assert.Equal(t, rank.CoPilot, state.Rank)
}
