package model

import "time"

// LeaderboardEntry aggregates a player's totals. Rank is derived and only
// valid right after a recalculation pass; reads that need correctness
// between passes compare total_points instead.
type LeaderboardEntry struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	PlayerID uint `gorm:"uniqueIndex;not null" json:"player_id"`

	Player Player `gorm:"foreignKey:PlayerID" json:"player,omitempty"`

	TotalPoints       int `gorm:"default:0" json:"total_points"`
	CompletedMissions int `gorm:"default:0" json:"completed_missions"`
	CompletedTasks    int `gorm:"default:0" json:"completed_tasks"`
	Rank              int `gorm:"default:0" json:"rank"`

	LastUpdatedAt time.Time `gorm:"autoUpdateTime" json:"last_updated_at"`
}
