package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"carconnect/internal/adapters/persistence/models"
	"carconnect/internal/core/domain"
	"carconnect/internal/pkg/password"
	"carconnect/internal/pkg/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProperties(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.properties")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDatabaseProperties_MySQL(t *testing.T) {
	path := writeProperties(t, `
# CarConnect database
server = db.local:3307
database = carconnect
user=app
password=s3cret
`)

	props, err := LoadDatabaseProperties(path)
	require.NoError(t, err)

	assert.Equal(t, DriverMySQL, props.Driver)
	assert.Equal(t, "db.local", props.Host)
	assert.Equal(t, "3307", props.Port)
	assert.Equal(t, "app:s3cret@tcp(db.local:3307)/carconnect?charset=utf8mb4&parseTime=True&loc=UTC", props.DSN())
}

func TestLoadDatabaseProperties_SQLite(t *testing.T) {
	path := writeProperties(t, "driver=sqlite\ndatabase=carconnect.db\n")

	props, err := LoadDatabaseProperties(path)
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, props.Driver)
	assert.Equal(t, "carconnect.db", props.DSN())
}

func TestLoadDatabaseProperties_MissingFile(t *testing.T) {
	_, err := LoadDatabaseProperties(filepath.Join(t.TempDir(), "nope.properties"))

	assert.ErrorIs(t, err, domain.ErrDatabaseConnection)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadDatabaseProperties_MissingKeys(t *testing.T) {
	path := writeProperties(t, "server=localhost\n")

	_, err := LoadDatabaseProperties(path)

	assert.ErrorIs(t, err, domain.ErrDatabaseConnection)
}

func TestParseDatabaseProperties_UnknownDriver(t *testing.T) {
	_, err := ParseDatabaseProperties(map[string]string{"driver": "oracle", "database": "x"})

	assert.ErrorIs(t, err, domain.ErrDatabaseConnection)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("ACCESS_TOKEN_MINUTES", "30")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.Equal(t, 30, cfg.JWT.AccessTokenMins)
	assert.Equal(t, "db.properties", cfg.DBProperties)
	assert.Equal(t, "", cfg.GetAllowedOrigins())
}

func TestFromEnv_InvalidMode(t *testing.T) {
	t.Setenv("APP_MODE", "staging")

	_, err := FromEnv()

	assert.Error(t, err)
}

func TestSeeder_CreatesAdminOnce(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()

	require.NoError(t, NewSeeder(db, "changeme").Run(ctx))
	require.NoError(t, NewSeeder(db, "changeme").Run(ctx))

	var admins []models.Admin
	require.NoError(t, db.Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, "admin", admins[0].Username)
	assert.True(t, password.Verify("changeme", admins[0].Password))
}

func TestSeeder_DisabledWithoutPassword(t *testing.T) {
	db := testdb.New(t)

	require.NoError(t, NewSeeder(db, "").Run(context.Background()))

	var count int64
	db.Model(&models.Admin{}).Count(&count)
	assert.Zero(t, count)
}
