package model

import "time"

const (
	RewardStatusEarned  = "earned"
	RewardStatusClaimed = "claimed"
	RewardStatusExpired = "expired"
)

type Reward struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	MissionID  uint   `gorm:"index;not null" json:"mission_id"`
	GameID     *uint  `json:"game_id,omitempty"`
	Name       string `gorm:"size:100;not null" json:"name"`
	RewardType string `gorm:"size:50" json:"reward_type"`

	// Value is an opaque JSON blob; the granting path only reads
	// "expirationDays" out of it.
	Value string `gorm:"type:text" json:"value,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PlayerReward struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	PlayerID uint `gorm:"uniqueIndex:idx_player_reward;not null" json:"player_id"`
	RewardID uint `gorm:"uniqueIndex:idx_player_reward;not null" json:"reward_id"`

	Reward Reward `gorm:"foreignKey:RewardID" json:"reward,omitempty"`

	Status    string     `gorm:"size:20;default:earned" json:"status"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	ClaimedAt *time.Time `json:"claimed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Expired reports whether the grant is past its expiry, regardless of the
// stored status. Status can lag real expiry until the sweep job runs.
func (pr *PlayerReward) Expired(now time.Time) bool {
	if pr.Status == RewardStatusExpired {
		return true
	}
	return pr.ExpiresAt != nil && now.After(*pr.ExpiresAt)
}
