package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port           string
	UploadDir      string
	UploadMaxBytes int

	// Database configuration
	DBType            string // sqlite, sqlite3, mysql, postgres, sqlserver
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int
	DBLogLevel        string

	// Credential configuration
	JWTSecret     string
	TokenTTL      time.Duration
	TokenIssuer   string
	BcryptCost    int
	AdminUsername string
	AdminPassword string

	// Logging configuration
	LogLevel  string
	LogFormat string
}

// Load loads configuration from environment variables, after an optional .env file
func Load() (*Config, error) {
	// A missing .env is fine; the process environment wins either way
	_ = godotenv.Load()

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("TOKEN_TTL is invalid: %w", err)
	}

	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
		UploadMaxBytes:    getEnvAsInt("UPLOAD_MAX_BYTES", 10*1024*1024),
		DBType:            getEnv("DB_TYPE", "sqlite"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", ""),
		DBDatabase:        getEnv("DB_DATABASE", "immorim.db"),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		DBLogLevel:        getEnv("DB_LOG_LEVEL", "warn"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		TokenTTL:          ttl,
		TokenIssuer:       getEnv("TOKEN_ISSUER", "rentdb"),
		BcryptCost:        getEnvAsInt("BCRYPT_COST", bcrypt.DefaultCost),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", "admin123"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "color"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for required and consistent values
func (cfg *Config) Validate() error {
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if cfg.DBDatabase == "" {
		return fmt.Errorf("DB_DATABASE is required")
	}

	switch cfg.DBType {
	case "sqlite", "sqlite3":
	case "mysql", "mariadb", "postgres", "postgresql", "sqlserver", "mssql":
		if cfg.DBHost == "" {
			return fmt.Errorf("DB_HOST is required for %s", cfg.DBType)
		}
		if cfg.DBUser == "" {
			return fmt.Errorf("DB_USER is required for %s", cfg.DBType)
		}
	default:
		return fmt.Errorf("unsupported DB_TYPE: %s", cfg.DBType)
	}

	return nil
}

// IsEmbedded reports whether the configured store is a local SQLite file
func (cfg *Config) IsEmbedded() bool {
	return cfg.DBType == "sqlite" || cfg.DBType == "sqlite3"
}

// DefaultDBPort returns DB_PORT or the conventional port for the dialect
func (cfg *Config) DefaultDBPort() string {
	if cfg.DBPort != "" {
		return cfg.DBPort
	}
	switch cfg.DBType {
	case "mysql", "mariadb":
		return "3306"
	case "postgres", "postgresql":
		return "5432"
	case "sqlserver", "mssql":
		return "1433"
	}
	return ""
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
