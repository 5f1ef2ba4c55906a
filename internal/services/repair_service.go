package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fixmate/repair-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRequestNotFound     = errors.New("repair request not found")
	ErrDescriptionRequired = errors.New("description is required")
	ErrMessageRequired     = errors.New("message is required")
	ErrTelegramNotLinked   = errors.New("telegram id is not linked to any user")
)

// Notifier delivers a message to a user on an external channel.
// Delivery is best-effort for status updates: failures are logged and
// reported as a flag, never propagated.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, text string) error
}

type CreateRepairInput struct {
	Description  string
	PhotoURL     *string
	RequiredTime *time.Time
}

type UpdateRepairInput struct {
	Description  *string
	PhotoURL     *string
	RequiredTime *time.Time
}

type RepairService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewRepairService(db *gorm.DB, notifier Notifier) *RepairService {
	return &RepairService{db: db, notifier: notifier}
}

func (s *RepairService) Create(userID uuid.UUID, in *CreateRepairInput) (*models.RepairRequest, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, ErrDescriptionRequired
	}

	req := models.RepairRequest{
		ID:           uuid.New(),
		Description:  in.Description,
		PhotoURL:     in.PhotoURL,
		RequiredTime: in.RequiredTime,
		Status:       models.StatusNew,
		UserID:       userID,
	}

	if err := s.db.Create(&req).Error; err != nil {
		return nil, fmt.Errorf("failed to create repair request: %w", err)
	}
	return &req, nil
}

func (s *RepairService) ListForUser(userID uuid.UUID) ([]models.RepairRequest, error) {
	var reqs []models.RepairRequest
	if err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

// ListByTelegramID resolves a Telegram chat id to a site account, then
// lists that account's requests. An unmapped chat id is an error, not
// an empty list.
func (s *RepairService) ListByTelegramID(chatID string) ([]models.RepairRequest, error) {
	var link models.TelegramLink
	if err := s.db.Where("chat_id = ?", chatID).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTelegramNotLinked
		}
		return nil, err
	}
	return s.ListForUser(link.UserID)
}

// Get fetches any request by id. No ownership check: any authenticated
// caller may read any request, matching the observed behavior of the
// site.
func (s *RepairService) Get(id uuid.UUID) (*models.RepairRequest, error) {
	var req models.RepairRequest
	if err := s.db.First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

// Update edits a request the caller owns. A missing row and a row owned
// by someone else are indistinguishable to the caller.
func (s *RepairService) Update(id, userID uuid.UUID, in *UpdateRepairInput) (*models.RepairRequest, error) {
	var req models.RepairRequest
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			return nil, ErrDescriptionRequired
		}
		updates["description"] = *in.Description
	}
	if in.RequiredTime != nil {
		updates["required_time"] = *in.RequiredTime
	}
	if in.PhotoURL != nil {
		updates["photo_url"] = *in.PhotoURL
	}

	if len(updates) > 0 {
		if err := s.db.Model(&req).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update repair request: %w", err)
		}
		if err := s.db.First(&req, "id = ?", id).Error; err != nil {
			return nil, err
		}
	}
	return &req, nil
}

// Delete removes a request the caller owns. When the (id, owner) filter
// matches nothing the operation is a silent no-op that still reports
// success.
func (s *RepairService) Delete(id, userID uuid.UUID) error {
	return s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.RepairRequest{}).Error
}

// SetStatus changes a request's status and notifies the requester on
// Telegram. The notification is best-effort: its failure is logged and
// surfaced only through the returned sent flag.
func (s *RepairService) SetStatus(ctx context.Context, id uuid.UUID, status models.RequestStatus) (*models.RepairRequest, bool, error) {
	var req models.RepairRequest
	if err := s.db.First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrRequestNotFound
		}
		return nil, false, err
	}

	if err := s.db.Model(&req).Update("status", status).Error; err != nil {
		return nil, false, fmt.Errorf("failed to update status: %w", err)
	}
	if err := s.db.First(&req, "id = ?", id).Error; err != nil {
		return nil, false, err
	}

	text := fmt.Sprintf(
		"The status of your repair request #%s is now: %s.\nDetails: %s\nOpen your account page for more.",
		req.ID, status, req.Description,
	)

	sent := true
	if err := s.notifier.Notify(ctx, req.UserID, text); err != nil {
		slog.Error("status notification failed", "request_id", req.ID, "user_id", req.UserID, "error", err)
		sent = false
	}
	return &req, sent, nil
}

// Claim assigns a request to an admin. No exclusivity: concurrent
// claims both succeed, last write wins.
func (s *RepairService) Claim(id, adminID uuid.UUID) (*models.RepairRequest, error) {
	var req models.RepairRequest
	if err := s.db.First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	if err := s.db.Model(&req).Update("admin_id", adminID).Error; err != nil {
		return nil, fmt.Errorf("failed to claim repair request: %w", err)
	}
	if err := s.db.First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// ListAll returns every request, optionally filtered by status.
func (s *RepairService) ListAll(status string) ([]models.RepairRequest, error) {
	query := s.db.Order("created_at ASC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var reqs []models.RepairRequest
	if err := query.Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (s *RepairService) ListAssigned(adminID uuid.UUID) ([]models.RepairRequest, error) {
	var reqs []models.RepairRequest
	if err := s.db.Where("admin_id = ?", adminID).Order("created_at ASC").Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

// AddComment appends an admin message to a request.
func (s *RepairService) AddComment(requestID, adminID uuid.UUID, message string) (*models.AdminMessage, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrMessageRequired
	}

	var count int64
	if err := s.db.Model(&models.RepairRequest{}).Where("id = ?", requestID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrRequestNotFound
	}

	msg := models.AdminMessage{
		ID:        uuid.New(),
		Message:   message,
		RequestID: requestID,
		AdminID:   adminID,
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("failed to create admin message: %w", err)
	}
	return &msg, nil
}

func (s *RepairService) ListComments(requestID uuid.UUID) ([]models.AdminMessage, error) {
	var msgs []models.AdminMessage
	if err := s.db.Where("request_id = ?", requestID).Order("created_at ASC").Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// LinkTelegram binds a user account to a Telegram chat id (upsert).
func (s *RepairService) LinkTelegram(userID uuid.UUID, chatID string) error {
	if strings.TrimSpace(chatID) == "" {
		return errors.New("tg_id is required")
	}

	var link models.TelegramLink
	err := s.db.Where("user_id = ?", userID).First(&link).Error
	switch {
	case err == nil:
		return s.db.Model(&link).Update("chat_id", chatID).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		link = models.TelegramLink{ID: uuid.New(), UserID: userID, ChatID: chatID}
		return s.db.Create(&link).Error
	default:
		return err
	}
}
