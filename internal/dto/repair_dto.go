package dto

import (
	"github.com/google/uuid"
)

type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// StatusUpdateResponse reports whether the Telegram notification went
// out; delivery failure never fails the status change itself.
type StatusUpdateResponse struct {
	RequestID   uuid.UUID `json:"request_id"`
	Status      string    `json:"status"`
	MessageSent bool      `json:"message_sent"`
}

type CommentRequest struct {
	Message string `json:"message"`
}

type TelegramLinkRequest struct {
	TgID string `json:"tg_id"`
}

type CreateReviewRequest struct {
	Content string `json:"content"`
}
