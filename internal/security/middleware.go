package security

import (
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func APIKeyGuard() fiber.Handler {
	apiKey := os.Getenv("API_KEY")

	return func(c *fiber.Ctx) error {
		if c.Get("X-API-Key") != apiKey {
			return c.Status(401).JSON(fiber.Map{"error": "unauthorized"})
		}
		return c.Next()
	}
}

// AccountGuard requires an explicit account id on every request. There is
// no ambient session; the settlement path only ever sees this id.
func AccountGuard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := strconv.ParseInt(c.Get("X-Account-ID"), 10, 64)
		if err != nil || uid <= 0 {
			return c.Status(401).JSON(fiber.Map{"error": "missing account id"})
		}
		c.Locals("uid", uid)
		return c.Next()
	}
}

func AdminGuard() fiber.Handler {
	admin := os.Getenv("ADMIN_TOKEN")

	return func(c *fiber.Ctx) error {
		if c.Get("X-Admin-Token") != admin {
			return c.Status(403).JSON(fiber.Map{"error": "forbidden"})
		}
		return c.Next()
	}
}
