package casino

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"casino-platform/internal/cache"
	"casino-platform/internal/games"
	"casino-platform/internal/wallet"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, wallet.ErrInsufficientFunds):
		return 402
	case errors.Is(err, ErrInvalidBet), errors.Is(err, ErrMaxBet),
		errors.Is(err, games.ErrRoundInProgress), errors.Is(err, games.ErrNoRound),
		errors.Is(err, games.ErrRoundOver):
		return 400
	case errors.Is(err, ErrKeyConflict), errors.Is(err, ErrUnsettledRound):
		return 409
	case errors.Is(err, wallet.ErrNotFound):
		return 404
	default:
		return 500
	}
}

func RegisterRoutes(r fiber.Router, service *Service, lb *Leaderboard) {

	r.Post("/casino/slots/spin", func(c *fiber.Ctx) error {

		type Req struct {
			Game       string          `json:"game"`
			Bet        decimal.Decimal `json:"bet"`
			ClientSeed string          `json:"client_seed"`
		}

		var body Req
		if err := c.BodyParser(&body); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "bad request"})
		}

		uid := c.Locals("uid").(int64)

		result, err := service.Spin(SpinRequest{
			UID:        uid,
			Game:       body.Game,
			Bet:        body.Bet,
			ClientSeed: body.ClientSeed,
			Key:        c.Get("X-Idempotency-Key"),
		})
		if err != nil {
			return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
		}

		return c.JSON(result)
	})

	r.Post("/casino/blackjack/deal", func(c *fiber.Ctx) error {

		type Req struct {
			Bet decimal.Decimal `json:"bet"`
		}

		var body Req
		if err := c.BodyParser(&body); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "bad request"})
		}

		uid := c.Locals("uid").(int64)

		view, err := service.Deal(uid, body.Bet, c.Get("X-Idempotency-Key"))
		if err != nil {
			return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(view)
	})

	r.Post("/casino/blackjack/hit", func(c *fiber.Ctx) error {
		uid := c.Locals("uid").(int64)

		view, err := service.Hit(uid)
		if err != nil {
			return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(view)
	})

	r.Post("/casino/blackjack/stand", func(c *fiber.Ctx) error {
		uid := c.Locals("uid").(int64)

		view, err := service.Stand(uid)
		if err != nil {
			return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(view)
	})

	r.Get("/casino/blackjack", func(c *fiber.Ctx) error {
		uid := c.Locals("uid").(int64)
		return c.JSON(service.TableState(uid))
	})

	r.Get("/casino/leaderboard", func(c *fiber.Ctx) error {
		if cached, err := cache.Get("leaderboard:top"); err == nil {
			c.Set("Content-Type", "application/json")
			return c.SendString(cached)
		}
		return c.JSON(lb.Top(10))
	})
}

func RegisterAdminRoutes(r fiber.Router, service *Service) {

	r.Get("/casino/rtp", func(c *fiber.Ctx) error {
		bet, payout := service.Engine().RTP().Totals()
		return c.JSON(fiber.Map{
			"total_bet":    bet,
			"total_payout": payout,
			"realized_rtp": service.Engine().RTP().Realized(),
		})
	})
}
