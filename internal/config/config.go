package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	BaseURL    string
	ServerPort string
	LogLevel   string

	// Live data provider surface. Provider is one of "hltv", "bo3gg",
	// "pandascore", "browser"; everything else disables live providers.
	LiveEnabled    bool
	LiveProvider   string
	FallbackToHLTV bool

	PandaScoreToken string
	BrowserHeadless bool
	BrowserTimeout  time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		BaseURL:         getEnv("HLTV_BASE_URL", "https://www.hltv.org"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LiveEnabled:     getEnvBool("LIVE_ENABLED", false),
		LiveProvider:    getEnv("LIVE_PROVIDER", "hltv"),
		FallbackToHLTV:  getEnvBool("LIVE_FALLBACK_TO_HLTV", true),
		PandaScoreToken: getEnv("PANDASCORE_TOKEN", ""),
		BrowserHeadless: getEnvBool("BROWSER_HEADLESS", true),
		BrowserTimeout:  getEnvDuration("BROWSER_TIMEOUT", 30*time.Second),
	}

	logger.Info().
		Str("base_url", cfg.BaseURL).
		Str("server_port", cfg.ServerPort).
		Bool("live_enabled", cfg.LiveEnabled).
		Str("live_provider", cfg.LiveProvider).
		Bool("fallback_to_hltv", cfg.FallbackToHLTV).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

var Module = fx.Provide(Load)
