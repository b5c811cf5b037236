// Package testdb opens throwaway in-memory databases for tests.
package testdb

import (
	"testing"

	"carconnect/internal/adapters/persistence/models"
	"carconnect/internal/pkg/password"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New returns a migrated in-memory SQLite database that is closed when the test ends.
// Password hashing is switched to the minimum bcrypt cost for the duration of the test.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	// Every pooled connection to :memory: would get its own empty database
	sqlDB.SetMaxOpenConns(1)

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	password.Cost = bcrypt.MinCost
	t.Cleanup(func() {
		password.Cost = password.DefaultCost
		sqlDB.Close()
	})

	return db
}
