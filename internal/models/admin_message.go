package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminMessage is an admin comment attached to a repair request.
// Append-only; never updated or deleted.
type AdminMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
	RequestID uuid.UUID `gorm:"type:uuid;not null;index" json:"request_id"`
	AdminID   uuid.UUID `gorm:"type:uuid;not null" json:"admin_id"`
}

func (AdminMessage) TableName() string {
	return "admin_messages"
}
