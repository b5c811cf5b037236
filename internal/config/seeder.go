package config

import (
	"context"
	"time"

	"carconnect/internal/adapters/persistence/models"
	"carconnect/internal/core/domain"
	"carconnect/internal/pkg/password"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db            *gorm.DB
	adminPassword string
}

// NewSeeder creates a new seeder instance.
// An empty adminPassword disables the admin seed.
func NewSeeder(db *gorm.DB, adminPassword string) *Seeder {
	return &Seeder{db: db, adminPassword: adminPassword}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedAdmin(ctx); err != nil {
		logrus.WithError(err).Warn("⚠️ Admin seeder skipped")
	}
	return nil
}

// seedAdmin creates the first admin account so the console can be used on an empty database
func (s *Seeder) seedAdmin(ctx context.Context) error {
	if s.adminPassword == "" {
		return nil
	}

	// Check if an admin already exists
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := password.Hash(s.adminPassword)
	if err != nil {
		return err
	}

	admin := &models.Admin{
		FirstName: "System",
		LastName:  "Administrator",
		Email:     "admin@carconnect.local",
		Username:  "admin",
		Password:  hashedPassword,
		Role:      domain.DefaultAdminRole,
		JoinDate:  time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(admin).Error; err != nil {
		return err
	}

	logrus.WithField("username", admin.Username).Info("✅ Admin user created")
	return nil
}
