package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Engine   EngineConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// EngineConfig tunes the supplementary-day engine.
type EngineConfig struct {
	// ReconcileWindowDays is how many days the nightly sweep re-scans,
	// ending yesterday.
	ReconcileWindowDays int

	// ReconcileTenantTimeout bounds one tenant's sweep so a slow tenant
	// cannot starve the others.
	ReconcileTenantTimeout time.Duration

	// Defaults applied when a company has no settings row.
	DefaultMinMinutes        int
	DefaultDailyWorkingHours float64
	DefaultConversionRate    float64
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading configuration from environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "workpulse-attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Engine configuration
	windowDays, err := strconv.Atoi(getEnv("RECONCILE_WINDOW_DAYS", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECONCILE_WINDOW_DAYS: %w", err)
	}

	tenantTimeout, err := time.ParseDuration(getEnv("RECONCILE_TENANT_TIMEOUT", "2m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECONCILE_TENANT_TIMEOUT: %w", err)
	}

	minMinutes, err := strconv.Atoi(getEnv("SUPPLEMENTARY_MIN_MINUTES", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid SUPPLEMENTARY_MIN_MINUTES: %w", err)
	}

	dailyHours, err := strconv.ParseFloat(getEnv("DAILY_WORKING_HOURS", "8"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid DAILY_WORKING_HOURS: %w", err)
	}

	conversionRate, err := strconv.ParseFloat(getEnv("RECOVERY_CONVERSION_RATE", "1.0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RECOVERY_CONVERSION_RATE: %w", err)
	}

	config.Engine = EngineConfig{
		ReconcileWindowDays:      windowDays,
		ReconcileTenantTimeout:   tenantTimeout,
		DefaultMinMinutes:        minMinutes,
		DefaultDailyWorkingHours: dailyHours,
		DefaultConversionRate:    conversionRate,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Engine.ReconcileWindowDays < 1 {
		return fmt.Errorf("RECONCILE_WINDOW_DAYS must be at least 1")
	}
	if c.Engine.DefaultMinMinutes < 0 {
		return fmt.Errorf("SUPPLEMENTARY_MIN_MINUTES must not be negative")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
