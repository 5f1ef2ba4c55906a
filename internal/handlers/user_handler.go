package handlers

import (
	"errors"

	"github.com/fixmate/repair-backend/internal/auth"
	"github.com/fixmate/repair-backend/internal/dto"
	"github.com/fixmate/repair-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	authService   *services.AuthService
	repairService *services.RepairService
}

func NewUserHandler(authService *services.AuthService, repairService *services.RepairService) *UserHandler {
	return &UserHandler{authService: authService, repairService: repairService}
}

// Me returns the live user row for the token's subject.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(user)
}

// AdminMe is Me behind the admin guard.
func (h *UserHandler) AdminMe(c *fiber.Ctx) error {
	return h.Me(c)
}

func (h *UserHandler) LinkTelegram(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.TelegramLinkRequest
	if err := c.BodyParser(&req); err != nil || req.TgID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "tg_id is required",
		})
	}

	if err := h.repairService.LinkTelegram(userID, req.TgID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to link telegram account",
		})
	}

	return c.JSON(fiber.Map{"message": "Telegram account linked"})
}
