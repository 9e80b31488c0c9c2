package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var (
	ErrMissingUserID = errors.New("missing user id in token")
	ErrMissingRole   = errors.New("missing role in token")
)

// GetUserIDFromToken reads the user id the auth middleware stored in Locals.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, ErrMissingUserID
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrMissingUserID
	}
	return id, nil
}

func GetUserRoleFromToken(c *fiber.Ctx) (string, error) {
	role, ok := c.Locals("userRole").(string)
	if !ok || role == "" {
		return "", ErrMissingRole
	}
	return role, nil
}

func GetUserNameFromToken(c *fiber.Ctx) string {
	name, _ := c.Locals("user_name").(string)
	return name
}
