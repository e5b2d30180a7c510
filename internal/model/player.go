package model

import "time"

// Player is the single actor model. It is created lazily on the first event
// received for an unknown external id.
type Player struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	ExternalID string  `gorm:"size:64;uniqueIndex;not null" json:"external_id"`
	Name       string  `gorm:"size:100" json:"name"`
	Email      *string `gorm:"size:255" json:"email,omitempty"`

	Points            int `gorm:"default:0" json:"points"`
	TotalPoints       int `gorm:"default:0" json:"total_points"`
	CompletedTasks    int `gorm:"default:0" json:"completed_tasks"`
	CompletedMissions int `gorm:"default:0" json:"completed_missions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
