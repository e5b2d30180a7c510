package model

import (
	"time"

	"github.com/google/uuid"
)

// Event is a registered event type that tasks subscribe to, e.g.
// "order_create". Distinct from EventLog, which records one received payload.
type Event struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:500" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type EventLog struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	TraceID  uuid.UUID `gorm:"type:uuid;index" json:"trace_id"`
	EventID  uint      `gorm:"index;not null" json:"event_id"`
	PlayerID uint      `gorm:"index;not null" json:"player_id"`
	GameID   *uint     `json:"game_id,omitempty"`

	// Payload is the raw properties bag as received, JSON-encoded.
	Payload    string    `gorm:"type:text" json:"payload,omitempty"`
	Processed  bool      `gorm:"default:false" json:"processed"`
	OccurredAt time.Time `json:"occurred_at"`

	CreatedAt time.Time `json:"created_at"`
}
