package config

import (
	"os"
	"strconv"

	"biascope/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	API      APIConfig
	Database DatabaseConfig
	Upload   UploadConfig
}

// ServerConfig holds dashboard server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// APIConfig holds JSON API server settings
type APIConfig struct {
	Port string
}

// DatabaseConfig holds optional postgres settings for the dataset registry.
// When URL is empty the in-memory store is used.
type DatabaseConfig struct {
	URL string
}

// UploadConfig holds uploaded-file handling settings
type UploadConfig struct {
	Dir      string
	MaxBytes int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		API: APIConfig{
			Port: getEnvOrDefault("API_PORT", "8081"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Upload: UploadConfig{
			Dir:      getEnvOrDefault("UPLOAD_DIR", os.TempDir()),
			MaxBytes: getEnvInt64OrDefault("UPLOAD_MAX_BYTES", 50*1024*1024),
		},
	}

	if err := validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validate(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT cannot be empty")
	}
	if config.Upload.MaxBytes <= 0 {
		return errors.ConfigInvalid("UPLOAD_MAX_BYTES must be positive")
	}
	if _, err := os.Stat(config.Upload.Dir); err != nil {
		return errors.ConfigInvalid("UPLOAD_DIR does not exist: " + config.Upload.Dir)
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt64OrDefault(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
