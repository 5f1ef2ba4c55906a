package handlers

import (
	"github.com/fixmate/repair-backend/internal/dto"
	"github.com/fixmate/repair-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
)

type FileHandler struct {
	photos *storage.PhotoStore
}

func NewFileHandler(photos *storage.PhotoStore) *FileHandler {
	return &FileHandler{photos: photos}
}

// Download streams stored photo bytes. A key can 404 briefly after the
// owning request was created, while the background upload is still in
// flight.
func (h *FileHandler) Download(c *fiber.Ctx) error {
	key := c.Params("key")

	data, contentType, err := h.photos.Download(c.Context(), key)
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "File not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to read file",
		})
	}

	c.Set("Content-Type", contentType)
	return c.Send(data)
}
