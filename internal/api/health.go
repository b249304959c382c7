package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"infinite-experiment/logbook/internal/models/entities"
)

// GatewayStatus reports whether the chat gateway session is up
type GatewayStatus interface {
	Connected() bool
}

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheckHandler handles GET /healthCheck
func HealthCheckHandler(deps *Dependencies, gateway GatewayStatus, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		services := make(map[string]entities.ServiceStatus)

		// Check database
		dbStatus := entities.StatusOK
		dbDetails := "Database Connected"
		if err := deps.Store.Ping(ctx); err != nil {
			dbStatus = entities.StatusDown
			dbDetails = err.Error()
		}
		services["database"] = entities.ServiceStatus{
			Status:  dbStatus,
			Details: dbDetails,
		}

		// Check redis when the cache is backed by it
		if p, ok := deps.Services.Cache.(pinger); ok {
			redisStatus := entities.StatusOK
			redisDetails := "Redis Connected"
			if err := p.Ping(ctx); err != nil {
				redisStatus = entities.StatusDegraded
				redisDetails = err.Error()
			}
			services["redis"] = entities.ServiceStatus{
				Status:  redisStatus,
				Details: redisDetails,
			}
		}

		if gateway != nil {
			gwStatus := entities.StatusOK
			gwDetails := "Gateway Connected"
			if !gateway.Connected() {
				gwStatus = entities.StatusDegraded
				gwDetails = "Gateway Disconnected"
			}
			services["discord"] = entities.ServiceStatus{
				Status:  gwStatus,
				Details: gwDetails,
			}
		}

		overallStatus := entities.StatusOK
		for _, svc := range services {
			if svc.Status == entities.StatusDown {
				overallStatus = entities.StatusDown
				break
			}
			if svc.Status != entities.StatusOK {
				overallStatus = entities.StatusDegraded
			}
		}

		resp := entities.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			UpSince:  upSince,
			Uptime:   time.Since(upSince).Round(time.Second).String(),
		}

		code := http.StatusOK
		if overallStatus == entities.StatusDown {
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
