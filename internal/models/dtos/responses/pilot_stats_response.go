package responses

import "time"

// PilotStatsResponse is the response for GET /api/v1/pilots/{pilotID}/stats
type PilotStatsResponse struct {
	PilotID       string `json:"pilot_id"`
	TotalFlights  int    `json:"total_flights"`
	TotalMinutes  int    `json:"total_minutes"`
	Rank          string `json:"rank"`
	NextRank      string `json:"next_rank,omitempty"`
	NearPromotion bool   `json:"near_promotion"`
}

// LastFlightResponse is the response for GET /api/v1/pilots/{pilotID}/last-flight
type LastFlightResponse struct {
	ID           uint      `json:"id"`
	FlightNumber string    `json:"flight_number"`
	Aircraft     string    `json:"aircraft"`
	Dep          string    `json:"dep"`
	Arr          string    `json:"arr"`
	FlightTime   int       `json:"flight_time"`
	Status       string    `json:"status"`
	Remarks      string    `json:"remarks"`
	Timestamp    time.Time `json:"timestamp"`
}

// RankResponse is the response for GET /api/v1/pilots/{pilotID}/rank
type RankResponse struct {
	PilotID       string     `json:"pilot_id"`
	Rank          string     `json:"rank"`
	NextRank      string     `json:"next_rank,omitempty"`
	FlightsToNext int        `json:"flights_to_next"`
	MinutesToNext int        `json:"minutes_to_next"`
	NearPromotion bool       `json:"near_promotion"`
	Message       string     `json:"message"`
	LastPromotion *time.Time `json:"last_promotion,omitempty"`
}
