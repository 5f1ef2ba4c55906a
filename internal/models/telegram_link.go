package models

import (
	"time"

	"github.com/google/uuid"
)

// TelegramLink maps a site account to a Telegram chat. Used in both
// directions: resolving ?tg_id= lookups from the bot, and addressing
// status notifications to the requester.
type TelegramLink struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	ChatID    string    `gorm:"size:32;not null;uniqueIndex" json:"chat_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (TelegramLink) TableName() string {
	return "telegram_links"
}
