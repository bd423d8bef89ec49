package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Platform PlatformConfig
	Session  SessionConfig
	Security SecurityConfig
	CORS     CORSConfig
	Log      LogConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// PlatformConfig holds the upstream platform gateway configuration
type PlatformConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig holds workflow session lifetime configuration
type SessionConfig struct {
	SoftTTL  time.Duration // idle sessions past this are reaped when closable
	HardTTL  time.Duration // idle sessions past this are reaped unconditionally
	ReapSpec string        // cron spec for the reaper
}

// SecurityConfig holds secrets for data at rest
type SecurityConfig struct {
	FernetKey string // base64 fernet key for session tokens; empty means ephemeral
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Pretty bool
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	platformTimeout, err := getDurationEnv("PLATFORM_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	softTTL, err := getDurationEnv("SESSION_SOFT_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	hardTTL, err := getDurationEnv("SESSION_HARD_TTL", 2*time.Hour)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5002"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/pandora_workflow.db"),
		},
		Platform: PlatformConfig{
			BaseURL: getEnv("PLATFORM_BASE_URL", "http://localhost:8080"),
			Timeout: platformTimeout,
		},
		Session: SessionConfig{
			SoftTTL:  softTTL,
			HardTTL:  hardTTL,
			ReapSpec: getEnv("SESSION_REAP_SPEC", "@every 1m"),
		},
		Security: SecurityConfig{
			FernetKey: getEnv("SESSION_FERNET_KEY", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: getListEnv("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:3000",
				"http://localhost",
			}),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnv("LOG_PRETTY", "false") == "true",
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getDurationEnv gets a duration environment variable or returns a default value
func getDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

// getListEnv gets a comma-separated environment variable or returns a default value
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
