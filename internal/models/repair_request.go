package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	StatusNew        RequestStatus = "new"
	StatusInProgress RequestStatus = "in_progress"
	StatusMessage    RequestStatus = "message"
	StatusCompleted  RequestStatus = "completed"
	StatusCancelled  RequestStatus = "cancelled"
)

// ParseStatus validates a client-supplied status value. The transition
// graph itself is not enforced: an admin may move a request between any
// two known statuses.
func ParseStatus(s string) (RequestStatus, error) {
	switch RequestStatus(s) {
	case StatusNew, StatusInProgress, StatusMessage, StatusCompleted, StatusCancelled:
		return RequestStatus(s), nil
	}
	return "", fmt.Errorf("unknown request status %q", s)
}

// RepairRequest is a user-submitted repair ticket. AdminID is set when
// an admin claims the request; claims are not exclusive, the last
// writer wins.
type RepairRequest struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Description  string        `gorm:"type:text;not null" json:"description"`
	PhotoURL     *string       `gorm:"size:255" json:"photo_url,omitempty"`
	RequiredTime *time.Time    `json:"required_time,omitempty"`
	Status       RequestStatus `gorm:"size:20;not null;default:'new';index" json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	UserID       uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	AdminID      *uuid.UUID    `gorm:"type:uuid;index" json:"admin_id,omitempty"`
	User         *User         `gorm:"foreignKey:UserID" json:"-"`
	Admin        *User         `gorm:"foreignKey:AdminID" json:"-"`
}

func (RepairRequest) TableName() string {
	return "repair_requests"
}
