package wallet

import (
	"github.com/gofiber/fiber/v2"

	"casino-platform/internal/ledger"
)

func RegisterRoutes(app fiber.Router, service *Service, ledgerService *ledger.Service) {

	app.Get("/wallet/profile", func(c *fiber.Ctx) error {
		uid := c.Locals("uid").(int64)

		p, err := service.GetProfile(uid)
		if err != nil {
			return c.Status(404).JSON(fiber.Map{"error": "not found"})
		}
		return c.JSON(p)
	})

	app.Get("/wallet/balance", func(c *fiber.Ctx) error {
		uid := c.Locals("uid").(int64)

		b, err := service.Balance(uid)
		if err != nil {
			return c.Status(404).JSON(fiber.Map{"error": "not found"})
		}
		return c.JSON(fiber.Map{"balance": b})
	})

	app.Get("/wallet/transactions", func(c *fiber.Ctx) error {
		uid := c.Locals("uid").(int64)

		entries, err := ledgerService.List(ledger.Filter{
			UID:    uid,
			Kind:   c.Query("type"),
			Status: c.Query("status"),
			Limit:  c.QueryInt("limit"),
		})
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"transactions": entries})
	})
}

// RegisterAdminRoutes covers the account provisioning normally done at
// signup by the auth subsystem.
func RegisterAdminRoutes(app fiber.Router, service *Service) {

	app.Post("/accounts", func(c *fiber.Ctx) error {
		type Req struct {
			UID int64 `json:"uid"`
		}
		var r Req
		if err := c.BodyParser(&r); err != nil || r.UID <= 0 {
			return c.Status(400).JSON(fiber.Map{"error": "bad request"})
		}

		if err := service.CreateProfile(r.UID); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "created", "uid": r.UID})
	})
}
