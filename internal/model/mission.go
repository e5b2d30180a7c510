package model

import "time"

type Mission struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	GameID      *uint  `gorm:"index" json:"game_id,omitempty"`
	Game        *Game  `gorm:"foreignKey:GameID" json:"-"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:500" json:"description"`
	Active      bool   `gorm:"default:true" json:"active"`

	RequiredPoints int        `gorm:"default:0" json:"required_points"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	Recurrence     *string    `gorm:"size:50" json:"recurrence,omitempty"`

	// A mission with a prerequisite is only available to a player once the
	// prerequisite mission's progress for that player is completed.
	PrerequisiteMissionID *uint `gorm:"index" json:"prerequisite_mission_id,omitempty"`

	TargetType    string `gorm:"size:20;default:all" json:"target_type"`
	TargetPlayers string `gorm:"type:text" json:"target_players,omitempty"`

	// OptionalTasksCountAsComplete controls whether an unfinished optional
	// task still counts toward mission completion.
	OptionalTasksCountAsComplete bool `gorm:"default:true" json:"optional_tasks_count_as_complete"`

	// AffectsLeaderboard missions add BonusPoints to the player's
	// leaderboard entry when completed.
	AffectsLeaderboard bool `gorm:"default:false" json:"affects_leaderboard"`
	BonusPoints        int  `gorm:"default:0" json:"bonus_points"`

	Tasks []Task `gorm:"foreignKey:MissionID" json:"tasks,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Task struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	MissionID  uint   `gorm:"index;not null" json:"mission_id"`
	EventID    uint   `gorm:"index;not null" json:"event_id"`
	Name       string `gorm:"size:100;not null" json:"name"`
	Points     int    `gorm:"default:0" json:"points"`
	IsOptional bool   `gorm:"default:false" json:"is_optional"`
	OrderIndex int    `gorm:"default:0" json:"order_index"`
	Active     bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
