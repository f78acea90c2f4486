package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Scheduler SchedulerConfig
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

// SchedulerConfig holds the scheduling engine knobs.
type SchedulerConfig struct {
	// HorizonDays is the rolling window recurrence generation fills.
	HorizonDays int
	// LateThresholdMinutes is how far past scheduled start a shift may run
	// before it is shown as late.
	LateThresholdMinutes int
	// MaxAccuracyM is the worst GPS accuracy accepted for clock-in without
	// an explicit confirmation.
	MaxAccuracyM float64
	// ExtendInterval is how often the horizon maintenance job runs.
	ExtendInterval string
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

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
		Name:     getEnv("DB_NAME", "cleandash-scheduler"),
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

	// Scheduler configuration
	horizonDays, err := strconv.Atoi(getEnv("SCHEDULE_HORIZON_DAYS", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULE_HORIZON_DAYS: %w", err)
	}

	lateThreshold, err := strconv.Atoi(getEnv("LATE_THRESHOLD_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid LATE_THRESHOLD_MINUTES: %w", err)
	}

	maxAccuracy, err := strconv.ParseFloat(getEnv("MAX_GPS_ACCURACY_M", "100"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_GPS_ACCURACY_M: %w", err)
	}

	config.Scheduler = SchedulerConfig{
		HorizonDays:          horizonDays,
		LateThresholdMinutes: lateThreshold,
		MaxAccuracyM:         maxAccuracy,
		ExtendInterval:       getEnv("SCHEDULE_EXTEND_INTERVAL", "6h"),
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
	if c.Scheduler.HorizonDays <= 0 {
		return fmt.Errorf("SCHEDULE_HORIZON_DAYS must be positive")
	}
	if c.Scheduler.LateThresholdMinutes < 0 {
		return fmt.Errorf("LATE_THRESHOLD_MINUTES must not be negative")
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
