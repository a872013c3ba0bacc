// middleware/auth.go
package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// UserContextMiddleware extracts the learner identity and roles forwarded by
// the Gateway. Handlers read them via c.Locals("learner_uid") and
// c.Locals("user_roles").
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid := c.Get("X-User-ID")
		rolesStr := c.Get("X-User-Roles")

		if uid == "" {
			log.Printf("[USER_CTX] X-User-ID missing on secured route: %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "NOK",
				"message": "missing X-User-ID — request must come through gateway with auth context",
			})
		}

		var roles []string
		for _, r := range strings.Split(rolesStr, ",") {
			r = strings.TrimSpace(r)
			if r != "" {
				roles = append(roles, r)
			}
		}

		c.Locals("learner_uid", uid)
		c.Locals("user_roles", roles)
		return c.Next()
	}
}

// RequireAdmin gates the content-management routes on the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		roles, _ := c.Locals("user_roles").([]string)
		for _, r := range roles {
			if r == "admin" {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "NOK",
			"message": "admin role required",
		})
	}
}
