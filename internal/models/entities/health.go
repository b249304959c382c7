package entities

import "time"

// ServiceStatus is the state of one dependency reported by /healthCheck
type ServiceStatus struct {
	Status  string `json:"status"`
	Details string `json:"details"`
}

type HealthCheckResponse struct {
	Status   string                   `json:"status"`
	Services map[string]ServiceStatus `json:"services"`
	UpSince  time.Time                `json:"up_since"`
	Uptime   string                   `json:"uptime"`
}

// Health states
const (
	StatusOK       = "ok"
	StatusDown     = "down"
	StatusDegraded = "degraded"
)
