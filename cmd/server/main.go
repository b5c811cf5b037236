package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"carconnect/internal/adapters/cache"
	"carconnect/internal/adapters/http/middleware"
	"carconnect/internal/adapters/http/routes"
	"carconnect/internal/adapters/persistence/models"
	"carconnect/internal/config"
	"carconnect/internal/core/services"
	"carconnect/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	_ "carconnect/docs" // Swagger docs
)

// @title CarConnect API
// @version 1.0
// @description Car rental platform: fleet, customers and reservations.

// @contact.name API Support
// @contact.email support@carconnect.local

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("❌ Failed to load configuration: %v", err)
	}
	logger.Setup(cfg.LogLevel, cfg.IsProd())

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		logrus.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		logrus.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	logrus.Info("✅ Database migration completed")

	ctx := context.Background()
	if err := config.NewSeeder(db, cfg.SeedAdminPass).Run(ctx); err != nil {
		logrus.Warnf("⚠️ Warning: Failed to seed data: %v", err)
	}

	store := cache.New(ctx, cfg.RedisURL)
	defer store.Close()

	reg := services.NewRegistry(db, cfg.JWT, store)

	// Reservation sweeper (00:05 UTC daily by default)
	sweeper, err := services.NewReservationSweeper(reg.Reservations, cfg.SweepSchedule)
	if err != nil {
		logrus.Fatalf("❌ Failed to create reservation sweeper: %v", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "CarConnect API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	middleware.Setup(app, cfg)
	routes.Setup(app, reg, cfg, config.HealthCheck)

	// Graceful shutdown
	go gracefulShutdown(app)

	logrus.Infof("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logrus.Errorf("❌ Server stopped: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		logrus.Errorf("❌ Error during shutdown: %v", err)
	}
	logrus.Info("✅ Server stopped gracefully")
}
