package routes

import (
	"net/http"
	"time"

	"infinite-experiment/logbook/internal/api"
	"infinite-experiment/logbook/internal/common"
	"infinite-experiment/logbook/internal/logging"
	"infinite-experiment/logbook/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(deps *api.Dependencies, gateway api.GatewayStatus, gatherer prometheus.Gatherer, apiLimiter *common.KeyedLimiter, upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(deps.Metrics))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	// keep-alive and health check
	r.Get("/", api.KeepAliveHandler())
	r.Get("/healthCheck", api.HealthCheckHandler(deps, gateway, upSince))
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	handlers := api.NewHandlers(deps)
	RegisterAPIRoutes(r, handlers, deps, apiLimiter)

	return r
}
