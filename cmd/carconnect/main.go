// Command carconnect runs the interactive console front-end.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"carconnect/internal/adapters/cache"
	"carconnect/internal/adapters/console"
	"carconnect/internal/adapters/persistence/models"
	"carconnect/internal/config"
	"carconnect/internal/core/services"
	"carconnect/internal/pkg/logger"

	"github.com/sirupsen/logrus"
)

func main() {
	// Logs go to stderr so they do not interleave with the menus
	logger.SetOutput(os.Stderr)

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("❌ Failed to load configuration: %v", err)
	}
	logger.Setup(cfg.LogLevel, cfg.IsProd())
	logger.SetOutput(os.Stderr)

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		logrus.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	if err := models.AutoMigrate(db); err != nil {
		logrus.Fatalf("❌ Failed to auto migrate: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.NewSeeder(db, cfg.SeedAdminPass).Run(ctx); err != nil {
		logrus.Warnf("⚠️ Warning: Failed to seed data: %v", err)
	}

	store := cache.New(ctx, cfg.RedisURL)
	defer store.Close()

	reg := services.NewRegistry(db, cfg.JWT, store)

	// Catch up on reservations that ended or started while nobody was running
	sweeper, err := services.NewReservationSweeper(reg.Reservations, cfg.SweepSchedule)
	if err != nil {
		logrus.Fatalf("❌ Failed to create reservation sweeper: %v", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	if err := console.New(os.Stdin, os.Stdout, reg).Run(ctx); err != nil && ctx.Err() == nil {
		logrus.Errorf("❌ Console stopped: %v", err)
	}
}
