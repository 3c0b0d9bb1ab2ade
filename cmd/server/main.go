package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/Kgee7/EarnBull/internal/config"
	"github.com/Kgee7/EarnBull/internal/handler"
	"github.com/Kgee7/EarnBull/internal/logger"
	"github.com/Kgee7/EarnBull/internal/middleware"
	"github.com/Kgee7/EarnBull/internal/momo"
	"github.com/Kgee7/EarnBull/internal/repository"
	"github.com/Kgee7/EarnBull/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Server.Environment == "development", os.Getenv("LOG_LEVEL")); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	repo, err := repository.New(cfg.Database.DSN())
	if err != nil {
		logger.Get().Fatal("failed to connect to database", zap.Error(err))
	}
	defer repo.Close()

	// External collaborators
	momoClient := momo.NewClient(cfg.Momo.BaseURL, cfg.Momo.APIKey, cfg.Momo.Timeout)
	ratesSvc := service.NewRatesService(cfg.Rates)

	// Engines
	userSvc := service.NewUserService(repo)
	rewardSvc := service.NewRewardService(repo)
	conversionSvc := service.NewConversionService(repo, ratesSvc)
	withdrawalSvc := service.NewWithdrawalService(repo, momoClient, ratesSvc)
	ledgerSvc := service.NewLedgerService(repo)
	goalSvc := service.NewGoalService(repo)

	h := handler.New(userSvc, rewardSvc, conversionSvc, withdrawalSvc, ledgerSvc, goalSvc, ratesSvc)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Health check
	app.Get("/health", h.Health)

	// Public API (no auth required)
	app.Get("/api/rates", h.GetRates)

	// API routes with bearer authentication
	api := app.Group("/api", middleware.Auth(cfg))

	// User
	api.Get("/user/me", h.GetMe)

	// Wallet
	api.Post("/wallet/steps", h.RecordSteps)
	api.Post("/wallet/convert/usd", h.ConvertToUSD)
	api.Post("/wallet/convert/ghs", h.ConvertToGHS)
	api.Post("/wallet/withdraw", h.Withdraw)
	api.Get("/wallet/withdrawals", h.GetWithdrawals)
	api.Get("/wallet/transactions", h.GetTransactions)
	api.Delete("/wallet/transactions/:id", h.DeleteTransaction)
	api.Delete("/wallet/transactions", h.DeleteAllTransactions)

	// Goals
	api.Get("/goals", h.GetGoals)
	api.Put("/goals", h.UpdateGoals)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watcher := service.NewWithdrawalWatcher(repo)
	go watcher.Start(ctx)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Get().Info("shutting down server")
		cancel()
		_ = app.Shutdown()
	}()

	logger.Get().Info("server starting", zap.String("port", cfg.Server.Port))
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		logger.Get().Fatal("failed to start server", zap.Error(err))
	}
}
