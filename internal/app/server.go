package app

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"casino-platform/internal/audit"
	"casino-platform/internal/cache"
	"casino-platform/internal/casino"
	"casino-platform/internal/config"
	"casino-platform/internal/db"
	"casino-platform/internal/event"
	"casino-platform/internal/jobs"
	"casino-platform/internal/ledger"
	"casino-platform/internal/logger"
	"casino-platform/internal/monitoring"
	"casino-platform/internal/payment"
	"casino-platform/internal/security"
	"casino-platform/internal/wallet"
	"casino-platform/internal/ws"
)

type Server struct {
	app  *fiber.App
	port string
	stop context.CancelFunc
}

func NewServer() (*Server, error) {
	cfg := config.Load()
	logger.Init()
	monitoring.Init()
	cache.Init(cfg.RedisAddr)
	payment.RegisterDefaults()

	database, err := db.Init(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	bus := event.NewBus()
	auditService := audit.New(database)
	ledgerService := ledger.New(database)
	walletService := wallet.New(database)

	engine := casino.NewEngine(database, walletService, ledgerService, casino.NewRisk(cfg.MaxBet), bus)
	casinoService := casino.NewService(engine)
	paymentService := payment.New(database, walletService, ledgerService, bus)

	hub := ws.NewHub()
	leaderboard := casino.NewLeaderboard()

	casino.RegisterConsumers(bus, auditService, leaderboard, hub)
	payment.RegisterConsumers(bus, auditService)

	ctx, stop := context.WithCancel(context.Background())
	manager := jobs.New()
	manager.Register(&casino.SnapshotJob{Leaderboard: leaderboard, Interval: 30 * time.Second})
	go manager.Start(ctx)

	app := fiber.New()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/ws/live", websocket.New(hub.Handler))

	api := app.Group("/api", security.APIKeyGuard(), security.AccountGuard())
	wallet.RegisterRoutes(api, walletService, ledgerService)
	casino.RegisterRoutes(api, casinoService, leaderboard)
	payment.RegisterRoutes(api, paymentService)

	admin := app.Group("/admin", security.AdminGuard())
	wallet.RegisterAdminRoutes(admin, walletService)
	casino.RegisterAdminRoutes(admin, casinoService)
	payment.RegisterAdminRoutes(admin, paymentService, ledgerService)

	return &Server{app: app, port: cfg.Port, stop: stop}, nil
}

func (s *Server) Start() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = s.port
	}
	return s.app.Listen(":" + port)
}

func (s *Server) Shutdown() error {
	s.stop()
	return s.app.Shutdown()
}
