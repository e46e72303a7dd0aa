package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"carpool/internal/matching"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NewRelic NewRelicConfig
	Matching MatchingConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// MatchingConfig holds the default recommendation thresholds. Riders can
// override them per search; these are the documented fallbacks.
type MatchingConfig struct {
	MaxPickupDistanceKm  float64
	MaxDropoffDistanceKm float64
	MaxTimeDifferenceMin float64
	MaxPriceBudget       float64
	MinDriverRating      float64
	MinMatchScore        float64
}

// Preferences converts the config section into matching preferences.
func (c MatchingConfig) Preferences() matching.Preferences {
	return matching.Preferences{
		MaxPickupDistanceKm:  c.MaxPickupDistanceKm,
		MaxDropoffDistanceKm: c.MaxDropoffDistanceKm,
		MaxTimeDifferenceMin: c.MaxTimeDifferenceMin,
		MaxPriceBudget:       c.MaxPriceBudget,
		MinDriverRating:      c.MinDriverRating,
		MinMatchScore:        c.MinMatchScore,
	}
}

// Load loads configuration from environment variables. A .env file in the
// working directory is applied first when present (local development).
func Load() *Config {
	_ = godotenv.Load()

	defaults := matching.DefaultPreferences()

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "carpool"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		NewRelic: NewRelicConfig{
			AppName:    getEnv("NEW_RELIC_APP_NAME", "carpool-matching-service"),
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			Enabled:    getBoolEnv("NEW_RELIC_ENABLED", false),
		},
		Matching: MatchingConfig{
			MaxPickupDistanceKm:  getFloatEnv("MATCH_MAX_PICKUP_KM", defaults.MaxPickupDistanceKm),
			MaxDropoffDistanceKm: getFloatEnv("MATCH_MAX_DROPOFF_KM", defaults.MaxDropoffDistanceKm),
			MaxTimeDifferenceMin: getFloatEnv("MATCH_MAX_TIME_DIFF_MIN", defaults.MaxTimeDifferenceMin),
			MaxPriceBudget:       getFloatEnv("MATCH_MAX_PRICE_BUDGET", defaults.MaxPriceBudget),
			MinDriverRating:      getFloatEnv("MATCH_MIN_DRIVER_RATING", defaults.MinDriverRating),
			MinMatchScore:        getFloatEnv("MATCH_MIN_SCORE", defaults.MinMatchScore),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
