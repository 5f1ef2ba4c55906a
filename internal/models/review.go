package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is free-standing user feedback. UserID is a loose reference,
// no foreign key is enforced at the data layer.
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
