package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	RedisURL      string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string

	// User service (balance authority) client settings.
	UserServiceBaseURL    string
	UserServiceToken      string
	UserServiceTimeout    time.Duration
	UserServiceMaxRetries int

	// Pending transfers older than this are swept to NEEDS_RECONCILIATION at startup.
	TransferStaleAfter time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("USER_SERVICE_BASE_URL", "http://localhost:3001")
	viper.SetDefault("USER_SERVICE_TOKEN", "")
	viper.SetDefault("USER_SERVICE_TIMEOUT", "10s")
	viper.SetDefault("USER_SERVICE_MAX_RETRIES", 2)
	viper.SetDefault("TRANSFER_STALE_AFTER", "15m")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.UserServiceBaseURL = viper.GetString("USER_SERVICE_BASE_URL")
	cfg.UserServiceToken = viper.GetString("USER_SERVICE_TOKEN")
	if cfg.UserServiceToken == "" {
		log.Println("Warning: USER_SERVICE_TOKEN not set. Calls to the user service will be unauthenticated.")
	}

	timeoutStr := viper.GetString("USER_SERVICE_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 10 * time.Second
		if timeoutStr != "" {
			log.Printf("Warning: Invalid value for USER_SERVICE_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout)
		}
	}
	cfg.UserServiceTimeout = timeout

	cfg.UserServiceMaxRetries = viper.GetInt("USER_SERVICE_MAX_RETRIES")
	if cfg.UserServiceMaxRetries < 0 {
		cfg.UserServiceMaxRetries = 0
	}

	staleStr := viper.GetString("TRANSFER_STALE_AFTER")
	staleAfter, err := time.ParseDuration(staleStr)
	if err != nil {
		staleAfter = 15 * time.Minute
		if staleStr != "" {
			log.Printf("Warning: Invalid value for TRANSFER_STALE_AFTER ('%s'). Defaulting to %s.\n", staleStr, staleAfter)
		}
	}
	cfg.TransferStaleAfter = staleAfter

	return cfg, nil
}
