package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the logbook bot
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Command Metrics
	CommandsTotal   *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Business Metrics
	FlightsLoggedTotal prometheus.Counter
	FlightMinutesTotal prometheus.Counter
	PromotionsTotal    *prometheus.CounterVec
	RankSyncDuration   prometheus.Histogram
	RankSyncRepaired   prometheus.Counter
}

// NewMetricsRegistry registers all metrics on reg and returns them.
// Pass prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logbook_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "logbook_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "logbook_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Command Metrics
		CommandsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logbook_commands_total",
				Help: "Total slash commands handled by command and outcome",
			},
			[]string{"command", "outcome"},
		),
		CommandDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "logbook_command_duration_seconds",
				Help:    "Slash command handling time in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"command"},
		),

		// Cache Metrics
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logbook_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logbook_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Business Metrics
		FlightsLoggedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "logbook_flights_logged_total",
				Help: "Total flight records logged",
			},
		),
		FlightMinutesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "logbook_flight_minutes_total",
				Help: "Total flight minutes logged",
			},
		),
		PromotionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logbook_promotions_total",
				Help: "Total pilot promotions by new rank",
			},
			[]string{"rank"},
		),
		RankSyncDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "logbook_rank_sync_duration_seconds",
				Help:    "Rank reconciliation job execution time in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
			},
		),
		RankSyncRepaired: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "logbook_rank_sync_repaired_total",
				Help: "Pilot rank rows repaired by the reconciliation job",
			},
		),
	}
}
