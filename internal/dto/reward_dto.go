package dto

import "time"

type RewardFilter struct {
	PlayerID  string `form:"playerId"`
	MissionID *uint  `form:"missionId"`
	Status    string `form:"status" binding:"omitempty,oneof=earned claimed expired"`
	PageFilter
}

type PlayerRewardResponse struct {
	ID        uint       `json:"id"`
	RewardID  uint       `json:"reward_id"`
	MissionID uint       `json:"mission_id"`
	Name      string     `json:"name"`
	Type      string     `json:"reward_type"`
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	ClaimedAt *time.Time `json:"claimed_at,omitempty"`
}

type CreateRewardRequest struct {
	MissionID  uint   `json:"mission_id" binding:"required"`
	GameID     *uint  `json:"game_id,omitempty"`
	Name       string `json:"name" binding:"required,min=1,max=100"`
	RewardType string `json:"reward_type,omitempty" binding:"max=50"`
	Value      string `json:"value,omitempty"`
}

type UpdateRewardRequest struct {
	Name       *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	RewardType *string `json:"reward_type,omitempty" binding:"omitempty,max=50"`
	Value      *string `json:"value,omitempty"`
}

type ClaimRewardRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
}

type GrantRewardsRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
}
