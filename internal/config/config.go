package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all configuration for the application
type Config struct {
	AppMode        string
	Port           string
	LogLevel       string
	DBProperties   string
	Database       DatabaseProperties
	JWT            JWTConfig
	RedisURL       string
	SweepSchedule  string
	SeedAdminPass  string
	AllowedOrigins string
}

// JWTConfig holds JWT configuration for the HTTP API
type JWTConfig struct {
	Secret          string
	AccessTokenMins int
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file, environment variables and the
// database property file named by DB_PROPERTIES
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		logrus.Debug(".env file not found, using environment variables")
	}

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}

	props, err := LoadDatabaseProperties(cfg.DBProperties)
	if err != nil {
		return nil, err
	}
	cfg.Database = *props

	// Set global config
	AppConfig = cfg

	logrus.WithFields(logrus.Fields{
		"mode":   cfg.AppMode,
		"driver": cfg.Database.Driver,
	}).Info("✅ Configuration loaded")
	return cfg, nil
}

// FromEnv builds the configuration from environment variables only
func FromEnv() (*Config, error) {
	// Trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	accessMins, err := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "60"))
	if err != nil || accessMins <= 0 {
		return nil, fmt.Errorf("invalid ACCESS_TOKEN_MINUTES: %q", os.Getenv("ACCESS_TOKEN_MINUTES"))
	}

	return &Config{
		AppMode:      appMode,
		Port:         getEnv("PORT", "3000"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DBProperties: getEnv("DB_PROPERTIES", "db.properties"),
		JWT: JWTConfig{
			Secret:          getEnv("JWT_SECRET", "default_secret"),
			AccessTokenMins: accessMins,
		},
		RedisURL:       getEnv("REDIS_URL", ""),
		SweepSchedule:  getEnv("RESERVATION_SWEEP_CRON", "5 0 * * *"),
		SeedAdminPass:  getEnv("SEED_ADMIN_PASSWORD", ""),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", ""),
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	if c.AllowedOrigins == "" && c.IsDev() {
		return "*"
	}
	return c.AllowedOrigins
}
