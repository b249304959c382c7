package gorm

import (
	"infinite-experiment/logbook/internal/rank"
	"time"
)

// PilotRank caches the last computed rank of a pilot. The flights table stays the source of truth.
type PilotRank struct {
	PilotID       string    `gorm:"column:pilot_id;primaryKey"`
	Rank          rank.Rank `gorm:"column:rank;not null"`
	LastPromotion time.Time `gorm:"column:last_promotion;not null"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (PilotRank) TableName() string {
	return "pilot_ranks"
}
