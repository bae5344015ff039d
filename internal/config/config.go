package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration. Every key has a default: the
// service starts with no environment at all and serves the bundled data
// paths on port 8050.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8050"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Input files
	MortalityCSVPath string `env:"MORTALITY_CSV_PATH" envDefault:"data/mortalidad_materna_antioquia.csv"`
	BoundaryGeoJSON  string `env:"MUNICIPAL_GEOJSON_PATH" envDefault:"data/geojson_munis_simplified.geojson"`

	// Redis view cache. Empty REDIS_ADDR disables caching entirely.
	RedisAddr    string        `env:"REDIS_ADDR"`
	RedisPass    string        `env:"REDIS_PASSWORD"`
	RedisDB      int           `env:"REDIS_DB" envDefault:"0"`
	ViewCacheTTL time.Duration `env:"VIEW_CACHE_TTL" envDefault:"10m"`
}

// LoadConfig reads configuration from environment variables and an optional
// .env file.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		HTTPPort:         getEnv("HTTP_PORT", "8050"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		MortalityCSVPath: getEnv("MORTALITY_CSV_PATH", "data/mortalidad_materna_antioquia.csv"),
		BoundaryGeoJSON:  getEnv("MUNICIPAL_GEOJSON_PATH", "data/geojson_munis_simplified.geojson"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPass:        os.Getenv("REDIS_PASSWORD"),
		RedisDB:          getEnvAsInt("REDIS_DB", 0),
		ViewCacheTTL:     getEnvAsDuration("VIEW_CACHE_TTL", 10*time.Minute),
	}

	return cfg, nil
}

// CacheEnabled reports whether the Redis view cache is configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

// getEnv returns the environment value or the default when unset.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt returns the environment value as int or the default.
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration returns the environment value as time.Duration or the default.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
