package handlers

import (
	"errors"

	"github.com/fixmate/repair-backend/internal/auth"
	"github.com/fixmate/repair-backend/internal/dto"
	"github.com/fixmate/repair-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	review, err := h.reviewService.Create(userID, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrContentRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create review",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

func (h *ReviewHandler) List(c *fiber.Ctx) error {
	reviews, err := h.reviewService.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(reviews)
}
