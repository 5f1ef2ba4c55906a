package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fixmate/repair-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrContentRequired = errors.New("content is required")

type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

func (s *ReviewService) Create(userID uuid.UUID, content string) (*models.Review, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}

	review := models.Review{
		ID:      uuid.New(),
		UserID:  userID,
		Content: content,
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &review, nil
}

func (s *ReviewService) List() ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
