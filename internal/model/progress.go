package model

import "time"

const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusSkipped    = "skipped"
)

// TaskProgress holds one row per (player, task). The composite unique index
// is what makes the OnConflict upserts in the rollup safe under concurrency.
type TaskProgress struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	PlayerID uint `gorm:"uniqueIndex:idx_player_task;not null" json:"player_id"`
	TaskID   uint `gorm:"uniqueIndex:idx_player_task;not null" json:"task_id"`

	Status       string `gorm:"size:20;default:not_started" json:"status"`
	PointsEarned int    `gorm:"default:0" json:"points_earned"`

	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	SkippedAt   *time.Time `json:"skipped_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MissionProgress holds one row per (player, mission).
type MissionProgress struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	PlayerID  uint `gorm:"uniqueIndex:idx_player_mission;not null" json:"player_id"`
	MissionID uint `gorm:"uniqueIndex:idx_player_mission;not null" json:"mission_id"`

	Status             string `gorm:"size:20;default:not_started" json:"status"`
	PointsEarned       int    `gorm:"default:0" json:"points_earned"`
	ProgressPercentage int    `gorm:"default:0" json:"progress_percentage"`

	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
