package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Storage  StorageConfig
	Sync     SyncConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds the shared secret the HR SSO signs access tokens with.
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// StorageConfig selects and configures the file storage backend.
type StorageConfig struct {
	Type     string // "local" or "gdrive"
	BasePath string
	BaseURL  string

	// Google Drive backend
	DriveClientID     string
	DriveClientSecret string
	DriveRefreshToken string
	DriveFolderID     string
}

// SyncConfig authenticates the HR system's directory push.
type SyncConfig struct {
	KeyHash string
}

func Load() (*Config, error) {
	// A missing .env file is fine in deployed environments.
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
		Name:     getEnv("DB_NAME", "onsite-hris"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	config.Storage = StorageConfig{
		Type:              getEnv("STORAGE_TYPE", "local"),
		BasePath:          getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:           getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
		DriveClientID:     getEnv("DRIVE_CLIENT_ID", ""),
		DriveClientSecret: getEnv("DRIVE_CLIENT_SECRET", ""),
		DriveRefreshToken: getEnv("DRIVE_REFRESH_TOKEN", ""),
		DriveFolderID:     getEnv("DRIVE_FOLDER_ID", ""),
	}

	config.Sync = SyncConfig{
		KeyHash: getEnv("SYNC_KEY_HASH", ""),
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
	if c.Sync.KeyHash == "" {
		return fmt.Errorf("SYNC_KEY_HASH is required")
	}

	switch c.Storage.Type {
	case "local":
		if c.Storage.BasePath == "" || c.Storage.BaseURL == "" {
			return fmt.Errorf("STORAGE_BASE_PATH and STORAGE_BASE_URL are required for local storage")
		}
	case "gdrive":
		if c.Storage.DriveClientID == "" || c.Storage.DriveClientSecret == "" ||
			c.Storage.DriveRefreshToken == "" || c.Storage.DriveFolderID == "" {
			return fmt.Errorf("DRIVE_CLIENT_ID, DRIVE_CLIENT_SECRET, DRIVE_REFRESH_TOKEN and DRIVE_FOLDER_ID are required for gdrive storage")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_TYPE: %s", c.Storage.Type)
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

func getEnvSlice(key, fallback string) []string {
	value := getEnv(key, fallback)
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}
