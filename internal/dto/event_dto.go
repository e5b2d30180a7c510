package dto

import "time"

type SubmitEventRequest struct {
	Event      string                 `json:"event" binding:"required"`
	PlayerID   string                 `json:"player_id" binding:"required"`
	GameID     *uint                  `json:"game_id,omitempty"`
	Timestamp  *time.Time             `json:"timestamp,omitempty"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

type RegisterEventRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description,omitempty" binding:"max=500"`
}

type TaskUpdate struct {
	TaskID    uint   `json:"task_id"`
	MissionID uint   `json:"mission_id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	Points    int    `json:"points"`
}

type MissionUpdate struct {
	MissionID          uint   `json:"mission_id"`
	Name               string `json:"name"`
	Status             string `json:"status"`
	PointsEarned       int    `json:"points_earned"`
	ProgressPercentage int    `json:"progress_percentage"`
	JustCompleted      bool   `json:"just_completed"`
}

type RewardUpdate struct {
	RewardID  uint       `json:"reward_id"`
	MissionID uint       `json:"mission_id"`
	Name      string     `json:"name"`
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// EventResult is the aggregated outcome of one processed event.
type EventResult struct {
	TraceID        string          `json:"trace_id"`
	PlayerID       string          `json:"player_id"`
	TaskUpdates    []TaskUpdate    `json:"task_updates"`
	MissionUpdates []MissionUpdate `json:"mission_updates"`
	RewardUpdates  []RewardUpdate  `json:"reward_updates"`
}
