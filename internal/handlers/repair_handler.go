package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/fixmate/repair-backend/internal/auth"
	"github.com/fixmate/repair-backend/internal/dto"
	"github.com/fixmate/repair-backend/internal/services"
	"github.com/fixmate/repair-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RepairHandler struct {
	repairService *services.RepairService
	photos        *storage.PhotoStore
}

func NewRepairHandler(repairService *services.RepairService, photos *storage.PhotoStore) *RepairHandler {
	return &RepairHandler{repairService: repairService, photos: photos}
}

// Create handles POST /repair/add: multipart form with a required
// description, optional image and required_time. The photo URL is
// returned immediately; the bytes land via a background task.
func (h *RepairHandler) Create(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	in := services.CreateRepairInput{Description: c.FormValue("description")}

	if raw := c.FormValue("required_time"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "required_time must be RFC3339",
			})
		}
		in.RequiredTime = &t
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		url, uploadErr := h.stashPhoto(file.Filename, file)
		if uploadErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to read uploaded image",
			})
		}
		in.PhotoURL = &url
	}

	req, err := h.repairService.Create(userID, &in)
	if err != nil {
		if errors.Is(err, services.ErrDescriptionRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create repair request",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(req)
}

// List handles GET /repairs. With a tg_id query parameter it is the
// unauthenticated Telegram bot lookup; otherwise it lists the
// authenticated caller's requests.
func (h *RepairHandler) List(c *fiber.Ctx) error {
	if tgID := c.Query("tg_id"); tgID != "" {
		reqs, err := h.repairService.ListByTelegramID(tgID)
		if err != nil {
			if errors.Is(err, services.ErrTelegramNotLinked) {
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
					Error: true, Message: "Telegram id is not linked",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}
		return c.JSON(reqs)
	}

	userID, err := auth.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	reqs, err := h.repairService.ListForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(reqs)
}

func (h *RepairHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request id",
		})
	}

	req, err := h.repairService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Repair request not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(req)
}

// Update handles PUT /repair/:id: multipart form, owner only. A foreign
// or missing request answers 404 either way.
func (h *RepairHandler) Update(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
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

	var in services.UpdateRepairInput
	if desc := c.FormValue("description"); desc != "" {
		in.Description = &desc
	}
	if raw := c.FormValue("required_time"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "required_time must be RFC3339",
			})
		}
		in.RequiredTime = &t
	}
	if file, err := c.FormFile("image"); err == nil && file != nil {
		url, uploadErr := h.stashPhoto(file.Filename, file)
		if uploadErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to read uploaded image",
			})
		}
		in.PhotoURL = &url
	}

	req, err := h.repairService.Update(id, userID, &in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRequestNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Repair request not found",
			})
		case errors.Is(err, services.ErrDescriptionRequired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(req)
}

// Delete handles DELETE /repair/:id. Always 204: a non-owned or missing
// request is a silent no-op, matching the observed site behavior.
func (h *RepairHandler) Delete(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
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

	if err := h.repairService.Delete(id, userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// stashPhoto reads the upload, schedules the background save, and
// returns the public URL the stored record should carry.
func (h *RepairHandler) stashPhoto(filename string, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}

	key := storage.ObjectKey(filename)
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		switch {
		case strings.HasSuffix(key, ".png"):
			contentType = "image/png"
		case strings.HasSuffix(key, ".jpg"), strings.HasSuffix(key, ".jpeg"):
			contentType = "image/jpeg"
		default:
			contentType = "application/octet-stream"
		}
	}
	h.photos.SaveAsync(key, data, contentType)
	return "/files/" + key, nil
}
