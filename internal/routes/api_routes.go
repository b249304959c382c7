package routes

import (
	"infinite-experiment/logbook/internal/api"
	"infinite-experiment/logbook/internal/common"
	"infinite-experiment/logbook/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, deps *api.Dependencies, limiter *common.KeyedLimiter) {
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.RateLimitMiddleware(limiter))
		v1.Use(middleware.AuthMiddleware(deps.Services.Tokens)) // all routes must carry a bearer token

		v1.Route("/pilots/{pilotID}", func(pilot chi.Router) {
			pilot.Get("/stats", handlers.GetPilotStats())
			pilot.Get("/last-flight", handlers.GetLastFlight())
			pilot.Get("/rank", handlers.GetPilotRank())
		})

		v1.Post("/jobs/rank-sync", handlers.TriggerRankSync())
	})
}
