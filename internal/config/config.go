package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"tick-mcp/internal/tick"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Tick tick.Config

	// TeamWindowDays is the trailing window used by the team overview
	// tool. Window policy lives in configuration, not code.
	TeamWindowDays int
}

// Load loads the configuration from .env files and environment variables.
// Missing credentials are a startup error, never a per-call one.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	if exePath, err := os.Executable(); err == nil {
		envPath := filepath.Join(filepath.Dir(exePath), ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	token := os.Getenv("TICK_API_TOKEN")
	subdomain := os.Getenv("TICK_SUBDOMAIN")
	if token == "" || subdomain == "" {
		return nil, errors.New("TICK_API_TOKEN and TICK_SUBDOMAIN environment variables are required")
	}

	timeoutSecs := getEnvInt("TICK_HTTP_TIMEOUT_SECONDS", 30)
	teamWindow := getEnvInt("TICK_TEAM_WINDOW_DAYS", 7)
	if teamWindow < 1 {
		teamWindow = 7
	}

	cfg := &AppConfig{
		Tick: tick.Config{
			Token:     token,
			Subdomain: subdomain,
			BaseURL:   getEnv("TICK_BASE_URL", ""),
			Timeout:   time.Duration(timeoutSecs) * time.Second,
		},
		TeamWindowDays: teamWindow,
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
