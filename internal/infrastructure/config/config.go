// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MongoDB (freshness cache)
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// PostgreSQL (primary store)
	PostgresURI string

	// Places API
	PlacesAPIKey  string
	PlacesBaseURL string

	// Freshness cache
	CacheTTL             time.Duration
	CacheCleanupInterval time.Duration

	// Enrichment batching
	BatchSize         int
	BatchDelay        time.Duration
	PhotoFixBatchSize int
	PhotoFixDelay     time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "placemarks"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		PlacesAPIKey:  getEnv("PLACES_API_KEY", ""),
		PlacesBaseURL: getEnv("PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place"),

		CacheTTL:             time.Duration(getEnvAsInt("CACHE_TTL_DAYS", 30)) * 24 * time.Hour,
		CacheCleanupInterval: time.Duration(getEnvAsInt("CACHE_CLEANUP_INTERVAL", 3600)) * time.Second,

		BatchSize:         getEnvAsInt("ENHANCE_BATCH_SIZE", 5),
		BatchDelay:        time.Duration(getEnvAsInt("ENHANCE_BATCH_DELAY_MS", 1000)) * time.Millisecond,
		PhotoFixBatchSize: getEnvAsInt("PHOTO_FIX_BATCH_SIZE", 3),
		PhotoFixDelay:     time.Duration(getEnvAsInt("PHOTO_FIX_DELAY_MS", 2000)) * time.Millisecond,
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate fails fast on missing required connection parameters.
func (c *Config) Validate() error {
	if c.PostgresURI == "" {
		return fmt.Errorf("POSTGRES_DSN is required")
	}
	if c.PlacesAPIKey == "" {
		return fmt.Errorf("PLACES_API_KEY is required")
	}
	return nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
