package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	MongoURI      string
	MongoDatabase string
	Port          string
	IsProduction  bool

	// Client directory service
	ClientServiceURL     string
	ClientServiceTimeout time.Duration

	// Resilience boundary
	OperationTimeout           time.Duration
	BreakerMaxRequests         uint32
	BreakerInterval            time.Duration
	BreakerOpenTimeout         time.Duration
	BreakerConsecutiveFailures uint32

	// Rate limiting
	RateLimitPerMinute int64
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "credits")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("CLIENT_SERVICE_URL", "http://localhost:8081")
	viper.SetDefault("CLIENT_SERVICE_TIMEOUT", "5s")
	viper.SetDefault("OPERATION_TIMEOUT", "10s")
	viper.SetDefault("BREAKER_MAX_REQUESTS", 3)
	viper.SetDefault("BREAKER_INTERVAL", "60s")
	viper.SetDefault("BREAKER_OPEN_TIMEOUT", "30s")
	viper.SetDefault("BREAKER_CONSECUTIVE_FAILURES", 5)
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 300)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.MongoURI = viper.GetString("MONGO_URI")
	if cfg.MongoURI == "" {
		log.Println("Warning: MONGO_URI environment variable not set.")
	}

	cfg.MongoDatabase = viper.GetString("MONGO_DATABASE")
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.ClientServiceURL = viper.GetString("CLIENT_SERVICE_URL")
	if cfg.ClientServiceURL == "" {
		log.Println("Warning: CLIENT_SERVICE_URL environment variable not set.")
	}
	cfg.ClientServiceTimeout = parseDurationOrDefault("CLIENT_SERVICE_TIMEOUT", 5*time.Second)

	cfg.OperationTimeout = parseDurationOrDefault("OPERATION_TIMEOUT", 10*time.Second)
	cfg.BreakerMaxRequests = viper.GetUint32("BREAKER_MAX_REQUESTS")
	cfg.BreakerInterval = parseDurationOrDefault("BREAKER_INTERVAL", 60*time.Second)
	cfg.BreakerOpenTimeout = parseDurationOrDefault("BREAKER_OPEN_TIMEOUT", 30*time.Second)
	cfg.BreakerConsecutiveFailures = viper.GetUint32("BREAKER_CONSECUTIVE_FAILURES")
	cfg.RateLimitPerMinute = viper.GetInt64("RATE_LIMIT_PER_MINUTE")

	return cfg, nil
}

func parseDurationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
