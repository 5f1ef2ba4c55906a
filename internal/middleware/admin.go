package middleware

import (
	"github.com/fixmate/repair-backend/internal/auth"
	"github.com/fixmate/repair-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired gates admin-only routes on the is_admin token claim.
// The claim is trusted as issued and not re-verified against the live
// credential store; a demoted admin keeps access until the token
// expires. Runs behind JWTProtected.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := auth.Claims(c); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if !auth.IsAdmin(c) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}
		return c.Next()
	}
}
