package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Environment ("development" or "production")
	Env string

	// Path to the on-device store file
	StorePath string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:       getEnv("ENV", "development"),
		StorePath: getEnv("STORE_PATH", defaultStorePath()),
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// defaultStorePath places the store under the user config directory,
// falling back to the working directory when none is available.
func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "centavo.db"
	}
	return filepath.Join(dir, "centavo", "centavo.db")
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
