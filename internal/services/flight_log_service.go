package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"infinite-experiment/logbook/internal/common"
	"infinite-experiment/logbook/internal/constants"
	"infinite-experiment/logbook/internal/db/repositories"
	"infinite-experiment/logbook/internal/logging"
	"infinite-experiment/logbook/internal/metrics"
	gormModels "infinite-experiment/logbook/internal/models/gorm"
)

// FlightEntry is a flight as submitted through /logflight
type FlightEntry struct {
	PilotID      string
	FlightNumber string
	Aircraft     string
	Dep          string
	Arr          string
	Gate         string
	Altitude     string
	FlightTime   int // minutes
	PIC          string
	FO           string
	Crew         string
	ATC          string
	Status       string
	Remarks      string
}

// LogResult is what a successful log returns
type LogResult struct {
	Flight *gormModels.Flight
	Rank   *RankReport // nil when the rank could not be refreshed
}

type FlightLogService struct {
	flights *repositories.FlightRepository
	keeper  *RankKeeper
	locks   *PilotLocks
	cache   common.CacheInterface
	metrics *metrics.MetricsRegistry
	now     func() time.Time
}

func NewFlightLogService(
	flights *repositories.FlightRepository,
	keeper *RankKeeper,
	locks *PilotLocks,
	cache common.CacheInterface,
	metricsReg *metrics.MetricsRegistry,
) *FlightLogService {
	return &FlightLogService{
		flights: flights,
		keeper:  keeper,
		locks:   locks,
		cache:   cache,
		metrics: metricsReg,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// LogFlight appends a flight for the pilot and refreshes their stored rank
func (s *FlightLogService) LogFlight(ctx context.Context, entry FlightEntry) (*LogResult, error) {
	if err := entry.validate(); err != nil {
		return nil, err
	}

	flight := &gormModels.Flight{
		PilotID:      entry.PilotID,
		FlightNumber: entry.FlightNumber,
		Aircraft:     entry.Aircraft,
		Dep:          entry.Dep,
		Arr:          entry.Arr,
		Gate:         entry.Gate,
		Altitude:     entry.Altitude,
		FlightTime:   entry.FlightTime,
		PIC:          entry.PIC,
		FO:           common.OrDefault(entry.FO, constants.DefaultFirstOfficer),
		Crew:         common.OrDefault(entry.Crew, constants.DefaultCrew),
		ATC:          common.OrDefault(entry.ATC, constants.DefaultATC),
		Status:       common.OrDefault(entry.Status, constants.DefaultStatus),
		Remarks:      common.OrDefault(entry.Remarks, constants.DefaultRemarks),
		Timestamp:    s.now(),
	}

	unlock := s.locks.Lock(entry.PilotID)
	defer unlock()

	if err := s.flights.Create(ctx, flight); err != nil {
		return nil, storageError("failed to log flight", err)
	}

	s.cache.Delete(totalsCacheKey(entry.PilotID))
	s.metrics.FlightsLoggedTotal.Inc()
	s.metrics.FlightMinutesTotal.Add(float64(entry.FlightTime))

	// The flight is committed at this point. pilot_ranks is only a cache that
	// /rankcheck and the rank sync job repair, so a failure here must not
	// turn into an error that invites the user to log the flight again.
	report, err := s.keeper.reconcileLocked(ctx, entry.PilotID)
	if err != nil {
		logging.Error("Rank refresh after flight log failed",
			"pilot_id", entry.PilotID,
			"flight_id", flight.ID,
			"error", err.Error(),
		)
		return &LogResult{Flight: flight}, nil
	}

	return &LogResult{Flight: flight, Rank: report}, nil
}

func (e FlightEntry) validate() error {
	if strings.TrimSpace(e.PilotID) == "" {
		return fmt.Errorf("%w: pilot id is required", ErrInvalidArgument)
	}
	required := []struct{ name, value string }{
		{"flight_number", e.FlightNumber},
		{"aircraft", e.Aircraft},
		{"dep", e.Dep},
		{"arr", e.Arr},
		{"gate", e.Gate},
		{"altitude", e.Altitude},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidArgument, field.name)
		}
	}
	if e.FlightTime < 0 {
		return fmt.Errorf("%w: flight_time must not be negative", ErrInvalidArgument)
	}
	return nil
}

func totalsCacheKey(pilotID string) string {
	return string(constants.CachePrefixPilotTotals) + pilotID
}
