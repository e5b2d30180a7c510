package dto

type TaskFilter struct {
	PlayerID  string `form:"playerId"`
	MissionID *uint  `form:"missionId"`
	PageFilter
}

// TaskActionRequest is the body for skip/complete actions on a task.
type TaskActionRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
}

// TaskActionResult is the structured outcome of a skip/complete action.
// Domain-rule rejections are results here, not errors.
type TaskActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`

	Task    *TaskResponse  `json:"task,omitempty"`
	Mission *MissionUpdate `json:"mission,omitempty"`
}
