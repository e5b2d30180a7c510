package dto

type LeaderboardFilter struct {
	Around string `form:"around"` // external player id; returns neighbours by points
	PageFilter
}

type LeaderboardEntryResponse struct {
	PlayerID          string `json:"player_id"`
	Name              string `json:"name"`
	TotalPoints       int    `json:"total_points"`
	CompletedMissions int    `json:"completed_missions"`
	CompletedTasks    int    `json:"completed_tasks"`
	Rank              int    `json:"rank"`
	Position          int    `json:"position"`
}

type CreateGameRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=100"`
	Description   string `json:"description,omitempty" binding:"max=500"`
	Active        *bool  `json:"active,omitempty"`
	TargetType    string `json:"target_type,omitempty" binding:"omitempty,oneof=all specific filtered"`
	TargetPlayers string `json:"target_players,omitempty"`
}

type UpdateGameRequest struct {
	Name          *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Description   *string `json:"description,omitempty" binding:"omitempty,max=500"`
	Active        *bool   `json:"active,omitempty"`
	TargetType    *string `json:"target_type,omitempty" binding:"omitempty,oneof=all specific filtered"`
	TargetPlayers *string `json:"target_players,omitempty"`
}
