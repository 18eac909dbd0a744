package config

import (
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	// API contains API server configuration
	API APIConfig
	// Database contains database configuration
	Database DatabaseConfig
	// Cache contains redis cache configuration
	Cache CacheConfig
	// Ingest contains the scheduled feed configuration
	Ingest IngestConfig
	// RateLimit contains rate limiting configuration
	RateLimit RateLimitConfig
}

// APIConfig contains API server settings
type APIConfig struct {
	// Port is the server port to listen on
	Port string
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	// Host is the database server hostname
	Host string
	// Port is the database server port
	Port int
	// User is the database username
	User string
	// Password is the database password
	Password string
	// DBName is the database name
	DBName string
	// SSLMode is the SSL mode for the database connection
	SSLMode string
	// MigrationsPath is the path to database migrations
	MigrationsPath string
}

// CacheConfig contains cache settings. Writes never invalidate cached
// entries; TTL is the only expiry mechanism.
type CacheConfig struct {
	// Enabled determines if the redis cache is used
	Enabled bool
	// Addr is the redis host:port
	Addr string
	// Password is the redis password
	Password string
	// DB is the redis database index
	DB int
	// TTL is the lifetime of cached list/aggregate results
	TTL time.Duration
}

// IngestConfig contains scheduled feed ingestion settings
type IngestConfig struct {
	// Enabled determines if the feed runs on schedule
	Enabled bool
	// Schedule in cron format (e.g. "30 * * * *")
	Schedule string
	// File is the path of the wide-table CSV feed
	File string
	// Replace truncates all stores before each scheduled run
	Replace bool
}

// RateLimitConfig contains rate limiting settings
type RateLimitConfig struct {
	// Requests is the number of requests allowed per window
	Requests int
	// Window is the time window in seconds
	Window int
	// Burst is the maximum burst size
	Burst int
}

// LoadFromEnv retrieves configuration from environment variables
func (c *Config) LoadFromEnv() error {
	c.API = APIConfig{
		Port: getEnvOrDefault("API_PORT", "8080"),
	}
	c.Database = DatabaseConfig{
		Host:           getEnvOrDefault("DB_HOST", "localhost"),
		Port:           getEnvAsInt("DB_PORT", 5432),
		User:           getEnvOrDefault("DB_USER", "postgres"),
		Password:       getEnvOrDefault("DB_PASSWORD", "postgres"),
		DBName:         getEnvOrDefault("DB_NAME", "gridbill"),
		SSLMode:        getEnvOrDefault("DB_SSL_MODE", "disable"),
		MigrationsPath: getEnvOrDefault("DB_MIGRATIONS_PATH", "migrations"),
	}
	c.Cache = CacheConfig{
		Enabled:  getEnvAsBool("CACHE_ENABLED", false),
		Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       getEnvAsInt("REDIS_DB", 0),
		TTL:      time.Duration(getEnvAsInt("CACHE_TTL_SECONDS", 300)) * time.Second,
	}
	c.Ingest = IngestConfig{
		Enabled:  getEnvAsBool("INGEST_ENABLED", false),
		Schedule: getEnvOrDefault("INGEST_SCHEDULE", "30 * * * *"),
		File:     getEnvOrDefault("INGEST_FILE", "data.csv"),
		Replace:  getEnvAsBool("INGEST_REPLACE", false),
	}
	c.RateLimit = RateLimitConfig{
		Requests: getEnvAsInt("RATE_LIMIT_REQUESTS", 1000),
		Window:   getEnvAsInt("RATE_LIMIT_WINDOW", 60),
		Burst:    getEnvAsInt("RATE_LIMIT_BURST", 50),
	}

	return nil
}

// getEnvAsInt retrieves an environment variable and converts it to an integer
func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvAsBool retrieves an environment variable and converts it to a boolean
func getEnvAsBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvOrDefault(key string, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
