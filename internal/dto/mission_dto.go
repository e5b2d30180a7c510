package dto

import "time"

type MissionFilter struct {
	PlayerID string `form:"playerId"`
	GameID   *uint  `form:"gameId"`
	Status   string `form:"status" binding:"omitempty,oneof=not_started in_progress completed skipped"`
	PageFilter
}

type TaskResponse struct {
	ID         uint   `json:"id"`
	MissionID  uint   `json:"mission_id"`
	EventID    uint   `json:"event_id"`
	Name       string `json:"name"`
	Points     int    `json:"points"`
	IsOptional bool   `json:"is_optional"`
	OrderIndex int    `json:"order_index"`
	Active     bool   `json:"active"`

	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type MissionResponse struct {
	ID          uint   `json:"id"`
	GameID      *uint  `json:"game_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`

	RequiredPoints        int        `json:"required_points"`
	StartDate             *time.Time `json:"start_date,omitempty"`
	EndDate               *time.Time `json:"end_date,omitempty"`
	PrerequisiteMissionID *uint      `json:"prerequisite_mission_id,omitempty"`

	Status             string `json:"status"`
	PointsEarned       int    `json:"points_earned"`
	ProgressPercentage int    `json:"progress_percentage"`
	Available          bool   `json:"available"`

	Tasks []TaskResponse `json:"tasks,omitempty"`
}

type CreateMissionRequest struct {
	GameID         *uint      `json:"game_id,omitempty"`
	Name           string     `json:"name" binding:"required,min=1,max=100"`
	Description    string     `json:"description,omitempty" binding:"max=500"`
	RequiredPoints int        `json:"required_points,omitempty"`
	Active         *bool      `json:"active,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	Recurrence     *string    `json:"recurrence,omitempty"`

	PrerequisiteMissionID *uint `json:"prerequisite_mission_id,omitempty"`

	TargetType    string `json:"target_type,omitempty" binding:"omitempty,oneof=all specific filtered"`
	TargetPlayers string `json:"target_players,omitempty"`

	OptionalTasksCountAsComplete *bool `json:"optional_tasks_count_as_complete,omitempty"`
	AffectsLeaderboard           bool  `json:"affects_leaderboard,omitempty"`
	BonusPoints                  int   `json:"bonus_points,omitempty"`
}

type UpdateMissionRequest struct {
	Name           *string    `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Description    *string    `json:"description,omitempty" binding:"omitempty,max=500"`
	RequiredPoints *int       `json:"required_points,omitempty"`
	Active         *bool      `json:"active,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`

	PrerequisiteMissionID *uint `json:"prerequisite_mission_id,omitempty"`

	TargetType    *string `json:"target_type,omitempty" binding:"omitempty,oneof=all specific filtered"`
	TargetPlayers *string `json:"target_players,omitempty"`

	OptionalTasksCountAsComplete *bool `json:"optional_tasks_count_as_complete,omitempty"`
	AffectsLeaderboard           *bool `json:"affects_leaderboard,omitempty"`
	BonusPoints                  *int  `json:"bonus_points,omitempty"`
}

type CreateTaskRequest struct {
	MissionID  uint   `json:"mission_id" binding:"required"`
	EventID    uint   `json:"event_id" binding:"required"`
	Name       string `json:"name" binding:"required,min=1,max=100"`
	Points     int    `json:"points,omitempty"`
	IsOptional bool   `json:"is_optional,omitempty"`
	OrderIndex int    `json:"order_index,omitempty"`
	Active     *bool  `json:"active,omitempty"`
}

type UpdateTaskRequest struct {
	EventID    *uint   `json:"event_id,omitempty"`
	Name       *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Points     *int    `json:"points,omitempty"`
	IsOptional *bool   `json:"is_optional,omitempty"`
	OrderIndex *int    `json:"order_index,omitempty"`
	Active     *bool   `json:"active,omitempty"`
}
