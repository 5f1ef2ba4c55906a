package middleware

import (
	"github.com/fixmate/repair-backend/internal/config"
	"github.com/fixmate/repair-backend/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: unauthorized,
	})
}

// JWTProtectedUnless skips token validation when skip returns true.
// Used by GET /repairs, which doubles as the unauthenticated Telegram
// bot lookup when a tg_id query parameter is present.
func JWTProtectedUnless(cfg *config.Config, skip func(*fiber.Ctx) bool) fiber.Handler {
	return jwtware.New(jwtware.Config{
		Filter:       skip,
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: unauthorized,
	})
}

func unauthorized(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "Unauthorized: invalid or expired token",
	})
}
