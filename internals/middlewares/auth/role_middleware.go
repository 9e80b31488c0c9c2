package auth

import (
	"github.com/gofiber/fiber/v2"

	"smartschool_backend/internals/constants"
)

// OnlyRoles allows the request through when the caller's role is listed.
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("userRole").(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized: missing role information",
			})
		}

		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		if customMessage == "" {
			customMessage = "Forbidden: you are not authorized to access this resource"
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": customMessage,
		})
	}
}

// RequireCapability gates write endpoints on the declarative policy table.
// Read endpoints carry no such gate.
func RequireCapability(entity, cap string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("userRole").(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized: missing role information",
			})
		}

		if !constants.HasCapability(role, entity, cap) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Only managers have edit permissions. You have read-only access.",
			})
		}
		return c.Next()
	}
}
