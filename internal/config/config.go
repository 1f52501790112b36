package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Scan     ScanConfig
	Cron     CronConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	Timezone    string
	CORSOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration. Tokens are issued elsewhere with the
// same secret; AccessExpiration only applies to tokens minted here.
type JWTConfig struct {
	Secret           string
	AccessExpiration time.Duration
}

// RedisConfig is optional. Without an address the scan guard runs in
// process, which is only correct for a single instance.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

type ScanConfig struct {
	Cooldown           time.Duration
	DuplicateWindow    time.Duration
	LockTTL            time.Duration
	RateLimitPerMinute int
}

type CronConfig struct {
	RateGapInterval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	} else if err != nil {
		slog.Info("No .env file found, using environment")
	}

	config := &Config{}
	var err error

	// Application configuration
	config.App = AppConfig{
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Timezone:    getEnv("APP_TIMEZONE", "Asia/Manila"),
		CORSOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
	if config.App.Port, err = getEnvInt("APP_PORT", 8080); err != nil {
		return nil, err
	}

	// Database configuration
	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "dtr_payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
	if config.Database.Port, err = getEnvInt("DB_PORT", 5432); err != nil {
		return nil, err
	}
	maxConns, err := getEnvInt("DB_MAX_CONNS", 25)
	if err != nil {
		return nil, err
	}
	minConns, err := getEnvInt("DB_MIN_CONNS", 2)
	if err != nil {
		return nil, err
	}
	config.Database.MaxConns = int32(maxConns)
	config.Database.MinConns = int32(minConns)

	// JWT configuration
	config.JWT.Secret = getEnv("JWT_SECRET_KEY", "")
	if config.JWT.AccessExpiration, err = getEnvDuration("JWT_ACCESS_EXPIRATION_TIME", time.Hour); err != nil {
		return nil, err
	}

	// Redis configuration
	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
	}
	if config.Redis.DB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if config.Redis.PoolSize, err = getEnvInt("REDIS_POOL_SIZE", 10); err != nil {
		return nil, err
	}

	// Scan configuration
	if config.Scan.Cooldown, err = getEnvDuration("SCAN_COOLDOWN", time.Minute); err != nil {
		return nil, err
	}
	if config.Scan.DuplicateWindow, err = getEnvDuration("SCAN_DUPLICATE_WINDOW", 5*time.Minute); err != nil {
		return nil, err
	}
	if config.Scan.LockTTL, err = getEnvDuration("SCAN_LOCK_TTL", 5*time.Second); err != nil {
		return nil, err
	}
	if config.Scan.RateLimitPerMinute, err = getEnvInt("SCAN_RATE_LIMIT_PER_MINUTE", 60); err != nil {
		return nil, err
	}

	// Cron configuration
	if config.Cron.RateGapInterval, err = getEnvDuration("CRON_RATE_GAP_INTERVAL", 6*time.Hour); err != nil {
		return nil, err
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
	if c.App.Timezone == "" {
		return fmt.Errorf("APP_TIMEZONE cannot be empty")
	}
	if c.Scan.LockTTL <= 0 {
		return fmt.Errorf("SCAN_LOCK_TTL must be positive")
	}
	if c.Scan.Cooldown < 0 || c.Scan.DuplicateWindow < 0 {
		return fmt.Errorf("SCAN_COOLDOWN and SCAN_DUPLICATE_WINDOW cannot be negative")
	}
	if c.Scan.RateLimitPerMinute <= 0 {
		return fmt.Errorf("SCAN_RATE_LIMIT_PER_MINUTE must be positive")
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

// SlogLevel maps LOG_LEVEL to a slog level; unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
