package payment

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"casino-platform/internal/ledger"
	"casino-platform/internal/wallet"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, wallet.ErrInsufficientFunds):
		return 402
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrUnknownMethod), errors.Is(err, ErrNotReviewable):
		return 400
	case errors.Is(err, ledger.ErrNotFound), errors.Is(err, wallet.ErrNotFound):
		return 404
	default:
		return 500
	}
}

func RegisterRoutes(app fiber.Router, service *Service) {

	app.Get("/payment/methods", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"methods": Methods()})
	})

	app.Post("/payment/deposit", func(c *fiber.Ctx) error {
		type Req struct {
			Amount        decimal.Decimal `json:"amount"`
			Method        string          `json:"method"`
			PhoneNumber   string          `json:"phone_number"`
			TransactionID string          `json:"transaction_id"`
		}
		var r Req
		if err := c.BodyParser(&r); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "bad request"})
		}

		entry, err := service.RequestDeposit(Request{
			UID:         c.Locals("uid").(int64),
			Amount:      r.Amount,
			Method:      r.Method,
			PhoneNumber: r.PhoneNumber,
			ProviderRef: r.TransactionID,
		})
		if err != nil {
			return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "queued", "transaction": entry})
	})

	app.Post("/payment/withdraw", func(c *fiber.Ctx) error {
		type Req struct {
			Amount      decimal.Decimal `json:"amount"`
			Method      string          `json:"method"`
			PhoneNumber string          `json:"phone_number"`
		}
		var r Req
		if err := c.BodyParser(&r); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "bad request"})
		}

		entry, err := service.RequestWithdraw(Request{
			UID:         c.Locals("uid").(int64),
			Amount:      r.Amount,
			Method:      r.Method,
			PhoneNumber: r.PhoneNumber,
		})
		if err != nil {
			return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "queued", "transaction": entry})
	})
}

func RegisterAdminRoutes(app fiber.Router, service *Service, ledgerService *ledger.Service) {

	app.Get("/transactions", func(c *fiber.Ctx) error {
		uid, _ := strconv.ParseInt(c.Query("uid"), 10, 64)

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

	app.Post("/review/:id", func(c *fiber.Ctx) error {
		type Req struct {
			Approve bool `json:"approve"`
		}
		var r Req
		if err := c.BodyParser(&r); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "bad request"})
		}

		entry, err := service.Review(c.Params("id"), r.Approve)
		if err != nil {
			return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"status": entry.Status, "transaction": entry})
	})
}
