package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims extracts the JWT claims the middleware stored in context.
func Claims(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}

// UserID extracts the caller's user id from the sub claim.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, err := Claims(c)
	if err != nil {
		return uuid.Nil, err
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}
	return uuid.Parse(sub)
}

// IsAdmin reports the is_admin claim as issued. It is never re-checked
// against the users table: a token keeps its privileges until expiry.
func IsAdmin(c *fiber.Ctx) bool {
	claims, err := Claims(c)
	if err != nil {
		return false
	}
	isAdmin, _ := claims["is_admin"].(bool)
	return isAdmin
}
