package repositories

import (
	"context"
	"errors"
	"fmt"

	"infinite-experiment/logbook/internal/constants"
	gormModels "infinite-experiment/logbook/internal/models/gorm"

	"github.com/jmoiron/sqlx"
	gormlib "gorm.io/gorm"
)

// PilotTotals is the aggregate of a pilot's logged flights
type PilotTotals struct {
	Flights int `db:"flights" json:"flights"`
	Minutes int `db:"minutes" json:"minutes"`
}

// FlightRepository handles the append-only flights table
type FlightRepository struct {
	db  *gormlib.DB
	sql *sqlx.DB
}

// NewFlightRepository creates a new flight repository
func NewFlightRepository(db *gormlib.DB, sql *sqlx.DB) *FlightRepository {
	return &FlightRepository{db: db, sql: sql}
}

// Create inserts a flight and fills in its generated ID
func (r *FlightRepository) Create(ctx context.Context, flight *gormModels.Flight) error {
	if err := r.db.WithContext(ctx).Create(flight).Error; err != nil {
		return fmt.Errorf("failed to insert flight: %w", err)
	}
	return nil
}

// Totals returns the number of flights and summed flight minutes for a pilot
func (r *FlightRepository) Totals(ctx context.Context, pilotID string) (PilotTotals, error) {
	var totals PilotTotals
	query := r.sql.Rebind(constants.PilotFlightTotals)
	if err := r.sql.GetContext(ctx, &totals, query, pilotID); err != nil {
		return PilotTotals{}, fmt.Errorf("failed to aggregate flights: %w", err)
	}
	return totals, nil
}

// Last returns the most recently logged flight of a pilot, or nil if there is none
func (r *FlightRepository) Last(ctx context.Context, pilotID string) (*gormModels.Flight, error) {
	var flight gormModels.Flight

	err := r.db.WithContext(ctx).
		Where("pilot_id = ?", pilotID).
		Order("id DESC").
		First(&flight).Error

	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch last flight: %w", err)
	}

	return &flight, nil
}

// DistinctPilots lists every pilot that has logged at least one flight
func (r *FlightRepository) DistinctPilots(ctx context.Context) ([]string, error) {
	var pilots []string
	if err := r.sql.SelectContext(ctx, &pilots, constants.DistinctFlightPilots); err != nil {
		return nil, fmt.Errorf("failed to list pilots: %w", err)
	}
	return pilots, nil
}
