package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port      int
	LogLevel  string
	LogFormat string

	CatalogDir string
	SaveDBPath string

	PlayerName string
	GardenName string

	AdvisorURL     string
	LeaderboardURL string
	MarketURL      string

	// VisitorCheckInterval is the cadence of the external visitor-spawn
	// driver; the engine itself is oblivious to it.
	VisitorCheckInterval time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		CatalogDir:     getEnv("CATALOG_DIR", DefaultCatalogDir),
		SaveDBPath:     getEnv("SAVE_DB_PATH", DefaultSaveDBPath),
		PlayerName:     getEnv("PLAYER_NAME", "gardener"),
		GardenName:     getEnv("GARDEN_NAME", "chrono garden"),
		AdvisorURL:     getEnv("ADVISOR_URL", ""),
		LeaderboardURL: getEnv("LEADERBOARD_URL", ""),
		MarketURL:      getEnv("MARKET_URL", ""),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	intervalStr := getEnv("VISITOR_CHECK_INTERVAL", "5m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid VISITOR_CHECK_INTERVAL value: %w", err)
	}
	cfg.VisitorCheckInterval = interval

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
