package api

import (
	"infinite-experiment/logbook/internal/auth"
	"infinite-experiment/logbook/internal/common"
	"infinite-experiment/logbook/internal/db"
	"infinite-experiment/logbook/internal/db/repositories"
	"infinite-experiment/logbook/internal/jobs"
	"infinite-experiment/logbook/internal/metrics"
	"infinite-experiment/logbook/internal/services"
)

type Repositories struct {
	Flights *repositories.FlightRepository
	Ranks   *repositories.PilotRankRepository
}

type Services struct {
	Cache      common.CacheInterface
	Locks      *services.PilotLocks
	RankKeeper *services.RankKeeper
	FlightLog  *services.FlightLogService
	PilotStats *services.PilotStatsService
	Tokens     *auth.TokenService
}

type Jobs struct {
	RankSync *jobs.RankSyncJob
}

// Dependencies is shared by the HTTP API and the chat bot
type Dependencies struct {
	Store    *db.Store
	Metrics  *metrics.MetricsRegistry
	Repo     *Repositories
	Services *Services
	Jobs     *Jobs
}

func InitDependencies(store *db.Store, cache common.CacheInterface, metricsReg *metrics.MetricsRegistry, tokens *auth.TokenService) *Dependencies {
	repos := &Repositories{
		Flights: repositories.NewFlightRepository(store.ORM, store.SQL),
		Ranks:   repositories.NewPilotRankRepository(store.ORM),
	}

	// One lock set so /logflight, /rankcheck and the sync job serialize per pilot
	locks := services.NewPilotLocks()
	keeper := services.NewRankKeeper(repos.Flights, repos.Ranks, locks, metricsReg)

	svcs := &Services{
		Cache:      cache,
		Locks:      locks,
		RankKeeper: keeper,
		FlightLog:  services.NewFlightLogService(repos.Flights, keeper, locks, cache, metricsReg),
		PilotStats: services.NewPilotStatsService(repos.Flights, keeper, locks, cache, metricsReg),
		Tokens:     tokens,
	}

	return &Dependencies{
		Store:    store,
		Metrics:  metricsReg,
		Repo:     repos,
		Services: svcs,
		Jobs: &Jobs{
			RankSync: jobs.NewRankSyncJob(repos.Flights, keeper, metricsReg),
		},
	}
}
