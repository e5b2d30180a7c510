package model

import "time"

const (
	TargetAll      = "all"
	TargetSpecific = "specific"
	TargetFiltered = "filtered"
)

type Game struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:500" json:"description"`
	Active      bool   `gorm:"default:true" json:"active"`

	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	// TargetType is one of all|specific|filtered. TargetPlayers holds a JSON
	// id list when TargetType is "specific".
	TargetType    string `gorm:"size:20;default:all" json:"target_type"`
	TargetPlayers string `gorm:"type:text" json:"target_players,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
