package repositories

import (
	"context"
	"errors"
	"fmt"

	gormModels "infinite-experiment/logbook/internal/models/gorm"

	gormlib "gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PilotRankRepository handles the pilot_ranks cache table
type PilotRankRepository struct {
	db *gormlib.DB
}

// NewPilotRankRepository creates a new pilot rank repository
func NewPilotRankRepository(db *gormlib.DB) *PilotRankRepository {
	return &PilotRankRepository{db: db}
}

// Get returns the stored rank of a pilot, or nil if none was recorded yet
func (r *PilotRankRepository) Get(ctx context.Context, pilotID string) (*gormModels.PilotRank, error) {
	var state gormModels.PilotRank

	err := r.db.WithContext(ctx).
		Where("pilot_id = ?", pilotID).
		First(&state).Error

	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch pilot rank: %w", err)
	}

	return &state, nil
}

// Upsert inserts or replaces the stored rank of a pilot
// ON CONFLICT (pilot_id) DO UPDATE
func (r *PilotRankRepository) Upsert(ctx context.Context, state *gormModels.PilotRank) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pilot_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rank", "last_promotion", "updated_at"}),
		}).
		Create(state).Error
	if err != nil {
		return fmt.Errorf("failed to upsert pilot rank: %w", err)
	}
	return nil
}

// Count returns the number of pilots with a stored rank
func (r *PilotRankRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&gormModels.PilotRank{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count pilot ranks: %w", err)
	}
	return n, nil
}
