package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"infinite-experiment/logbook/internal/api"
	"infinite-experiment/logbook/internal/auth"
	"infinite-experiment/logbook/internal/common"
	"infinite-experiment/logbook/internal/db"
	"infinite-experiment/logbook/internal/metrics"
	"infinite-experiment/logbook/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type connectedGateway struct{}

func (connectedGateway) Connected() bool { return true }

func setupServer(t *testing.T, limiter *common.KeyedLimiter) (http.Handler, *api.Dependencies) {
	t.Helper()

	store, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { store.Close() })

	reg := prometheus.NewRegistry()
	deps := api.InitDependencies(
		store,
		common.NewCacheService(time.Minute, time.Minute),
		metrics.NewMetricsRegistry(reg),
		auth.NewTokenService([]byte("router-secret")),
	)
	return RegisterRoutes(deps, connectedGateway{}, reg, limiter, time.Now()), deps
}

func get(h http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	req.RemoteAddr = "198.51.100.10:40000"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRouter_PublicEndpoints(t *testing.T) {
	server, _ := setupServer(t, common.NewKeyedLimiter(100, 100))

	rr := get(server, "/", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Bot is running!", rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	rr = get(server, "/healthCheck", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"discord"`)

	rr = get(server, "/metrics", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "logbook_http_requests_total")
}

func TestRouter_APIRequiresToken(t *testing.T) {
	server, deps := setupServer(t, common.NewKeyedLimiter(100, 100))

	rr := get(server, "/api/v1/pilots/555/stats", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	token, err := deps.Services.Tokens.Issue("dashboard", time.Hour)
	require.NoError(t, err)

	_, err = deps.Services.FlightLog.LogFlight(context.Background(), services.FlightEntry{
		PilotID:      "555",
		FlightNumber: "EK203",
		Aircraft:     "A380-800",
		Dep:          "OMDB",
		Arr:          "KJFK",
		Gate:         "A12",
		Altitude:     "FL400",
		FlightTime:   840,
		PIC:          "<@555>",
	})
	require.NoError(t, err)

	rr = get(server, "/api/v1/pilots/555/stats", token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"total_minutes":840`)

	rr = get(server, "/api/v1/pilots/555/rank", token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"rank":"Co-Pilot"`)

	rr = get(server, "/api/v1/pilots/556/last-flight", token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_APIRateLimited(t *testing.T) {
	server, deps := setupServer(t, common.NewKeyedLimiter(0.001, 2))

	token, err := deps.Services.Tokens.Issue("dashboard", time.Hour)
	require.NoError(t, err)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, get(server, "/api/v1/pilots/1/stats", token).Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Public routes are not limited
	assert.Equal(t, http.StatusOK, get(server, "/", "").Code)
	assert.True(t, strings.HasPrefix(get(server, "/healthCheck", "").Header().Get("Content-Type"), "application/json"))
}

func TestRouter_TriggerRankSyncWithToken(t *testing.T) {
	server, deps := setupServer(t, common.NewKeyedLimiter(100, 100))

	token, err := deps.Services.Tokens.Issue("ops", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/jobs/rank-sync", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"triggered_by":"ops"`)
}
