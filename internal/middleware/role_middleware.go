package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// Authorize allows the request through only if the authenticated role is in
// the given list. Must run after Protect.
func Authorize(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing role"})
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Role not authorized for this route"})
	}
}
