package handlers

import (
	"errors"

	"github.com/fixmate/repair-backend/internal/auth"
	"github.com/fixmate/repair-backend/internal/dto"
	"github.com/fixmate/repair-backend/internal/models"
	"github.com/fixmate/repair-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminHandler serves the admin panel: status changes, claims, and
// request comments. All routes sit behind the admin guard.
type AdminHandler struct {
	repairService *services.RepairService
}

func NewAdminHandler(repairService *services.RepairService) *AdminHandler {
	return &AdminHandler{repairService: repairService}
}

// UpdateStatus handles PATCH /requests/:id/status. The response
// carries message_sent so callers can see whether the Telegram
// notification went out; delivery failure never fails the call.
func (h *AdminHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request id",
		})
	}

	var req dto.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	status, err := models.ParseStatus(req.Status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	updated, sent, err := h.repairService.SetStatus(c.Context(), id, status)
	if err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Repair request not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update status",
		})
	}

	return c.JSON(dto.StatusUpdateResponse{
		RequestID:   updated.ID,
		Status:      string(updated.Status),
		MessageSent: sent,
	})
}

// ListAll handles GET /admin/repairs with an optional ?status= filter.
func (h *AdminHandler) ListAll(c *fiber.Ctx) error {
	status := c.Query("status")
	if status != "" {
		if _, err := models.ParseStatus(status); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
	}

	reqs, err := h.repairService.ListAll(status)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(reqs)
}

// Claim handles POST /admin/repair/:id/claim. Assignment is not
// exclusive; the last claimer wins.
func (h *AdminHandler) Claim(c *fiber.Ctx) error {
	adminID, err := auth.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request id",
		})
	}

	req, err := h.repairService.Claim(id, adminID)
	if err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Repair request not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to claim repair request",
		})
	}
	return c.JSON(req)
}

func (h *AdminHandler) ListAssigned(c *fiber.Ctx) error {
	adminID, err := auth.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	reqs, err := h.repairService.ListAssigned(adminID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(reqs)
}

func (h *AdminHandler) Comment(c *fiber.Ctx) error {
	adminID, err := auth.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request id",
		})
	}

	var req dto.CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	msg, err := h.repairService.AddComment(id, adminID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRequestNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Repair request not found",
			})
		case errors.Is(err, services.ErrMessageRequired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create comment",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

func (h *AdminHandler) ListComments(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request id",
		})
	}

	msgs, err := h.repairService.ListComments(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(msgs)
}
