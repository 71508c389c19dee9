package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment at startup
type Config struct {
	DiscordToken string

	// Optional seed for the shared riot api key; the key can also be
	// set at runtime with the apikey command
	RiotApiKey string

	DatabasePath string

	PollInterval  time.Duration
	HttpTimeout   time.Duration
	MaxConcurrent int

	LogLevel    string
	MetricsAddr string
}

// Load reads configuration from the environment, with a .env file as
// an optional source
func Load() (*Config, error) {

	_ = godotenv.Load()

	cfg := &Config{
		DiscordToken: os.Getenv("DISCORD_BOT_TOKEN"),
		RiotApiKey:   os.Getenv("RIOT_API_KEY"),
		DatabasePath: getEnvOrDefault("DATABASE_PATH", "./data/leaguewatch.db"),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
		MetricsAddr:  os.Getenv("METRICS_ADDR"),
	}

	pollSeconds, err := getEnvInt("POLL_INTERVAL_SECONDS", 30)
	if err != nil {
		return nil, err
	}
	cfg.PollInterval = time.Duration(pollSeconds) * time.Second

	timeoutSeconds, err := getEnvInt("HTTP_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, err
	}
	cfg.HttpTimeout = time.Duration(timeoutSeconds) * time.Second

	cfg.MaxConcurrent, err = getEnvInt("MAX_CONCURRENT_QUERIES", 4)
	if err != nil {
		return nil, err
	}

	if cfg.DiscordToken == "" {
		return nil, fmt.Errorf("DISCORD_BOT_TOKEN is required")
	}
	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("POLL_INTERVAL_SECONDS must be positive")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
