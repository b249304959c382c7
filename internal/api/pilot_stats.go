package api

import (
	"errors"
	"net/http"
	"time"

	"infinite-experiment/logbook/internal/common"
	"infinite-experiment/logbook/internal/constants"
	"infinite-experiment/logbook/internal/models/dtos/responses"
	"infinite-experiment/logbook/internal/services"

	"github.com/go-chi/chi/v5"
)

// GetPilotStats handles GET /api/v1/pilots/{pilotID}/stats
func (h *Handlers) GetPilotStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		pilotID := chi.URLParam(r, "pilotID")

		stats, err := h.deps.Services.PilotStats.GetStats(r.Context(), pilotID)
		if err != nil {
			handleServiceError(w, initTime, err)
			return
		}

		resp := responses.PilotStatsResponse{
			PilotID:       pilotID,
			TotalFlights:  stats.Totals.Flights,
			TotalMinutes:  stats.Totals.Minutes,
			Rank:          string(stats.Rank.Current),
			NearPromotion: stats.Rank.NearPromotion,
		}
		if stats.Rank.HasNext() {
			resp.NextRank = string(stats.Rank.Next.Rank)
		}

		common.RespondSuccess(w, initTime, "Pilot stats fetched successfully", resp)
	}
}

// GetLastFlight handles GET /api/v1/pilots/{pilotID}/last-flight
func (h *Handlers) GetLastFlight() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		pilotID := chi.URLParam(r, "pilotID")

		flight, err := h.deps.Services.PilotStats.GetLastFlight(r.Context(), pilotID)
		if err != nil {
			handleServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Last flight fetched successfully", responses.LastFlightResponse{
			ID:           flight.ID,
			FlightNumber: flight.FlightNumber,
			Aircraft:     flight.Aircraft,
			Dep:          flight.Dep,
			Arr:          flight.Arr,
			FlightTime:   flight.FlightTime,
			Status:       flight.Status,
			Remarks:      flight.Remarks,
			Timestamp:    flight.Timestamp,
		})
	}
}

// GetPilotRank handles GET /api/v1/pilots/{pilotID}/rank
// Read only: a drifted pilot_ranks row is reported, not repaired (see POST /jobs/rank-sync)
func (h *Handlers) GetPilotRank() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		pilotID := chi.URLParam(r, "pilotID")

		report, err := h.deps.Services.PilotStats.RankStatus(r.Context(), pilotID)
		if err != nil {
			handleServiceError(w, initTime, err)
			return
		}

		resp := responses.RankResponse{
			PilotID:       pilotID,
			Rank:          string(report.Result.Current),
			FlightsToNext: report.Result.FlightsToNext,
			MinutesToNext: report.Result.MinutesToNext,
			NearPromotion: report.Result.NearPromotion,
			Message:       report.Result.Message(),
		}
		if report.Result.HasNext() {
			resp.NextRank = string(report.Result.Next.Rank)
		}
		if report.State != nil {
			promoted := report.State.LastPromotion
			resp.LastPromotion = &promoted
		}

		common.RespondSuccess(w, initTime, "Pilot rank fetched successfully", resp)
	}
}

// handleServiceError maps service errors to appropriate HTTP responses
func handleServiceError(w http.ResponseWriter, initTime time.Time, err error) {
	code := services.ErrorCode(err)
	message := constants.GetErrorMessage(code)

	switch {
	case errors.Is(err, services.ErrNoFlights):
		common.RespondError(w, initTime, nil, message, http.StatusNotFound)
	case errors.Is(err, services.ErrInvalidArgument):
		common.RespondError(w, initTime, err, message, http.StatusBadRequest)
	default:
		common.RespondError(w, initTime, err, message, http.StatusInternalServerError)
	}
}
