package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"ictdetect/internal/engine"
)

// Config holds all application configuration.
type Config struct {
	TwelveAPIKey string
	Symbol       string
	Interval     string
	CandleCount  int

	SwingLookback           int
	MinBodyRatio            float64
	VolumeThreshold         float64
	LiquidityVolumeIncrease float64
	SweepThreshold          float64
	StructureLookback       int
	GrabRecency             int
	VolumeWindow            int
	ConfluenceHigh          int
	ConfluenceLow           int

	LogLevel       string
	RequestTimeout int // seconds

	DatabaseURL    string
	TelegramToken  string
	TelegramChatID int64
	ClassifierURL  string
	CronSpec       string
}

// Load initializes configuration from environment variables.
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	defaults := engine.DefaultParams()

	var cfg Config
	cfg.TwelveAPIKey = os.Getenv("TWELVE_API_KEY")
	cfg.Symbol = getEnvWithDefault("SYMBOL", "EUR/USD")
	cfg.Interval = getEnvWithDefault("INTERVAL", "5min")
	cfg.CandleCount = getEnvIntWithDefault("CANDLE_COUNT", 500)

	cfg.SwingLookback = getEnvIntWithDefault("SWING_LOOKBACK", defaults.SwingLookback)
	cfg.MinBodyRatio = getEnvFloatWithDefault("MIN_BODY_RATIO", defaults.MinBodyRatio)
	cfg.VolumeThreshold = getEnvFloatWithDefault("VOLUME_THRESHOLD", defaults.VolumeThreshold)
	cfg.LiquidityVolumeIncrease = getEnvFloatWithDefault("LIQUIDITY_VOLUME_INCREASE", defaults.LiquidityVolumeIncrease)
	cfg.SweepThreshold = getEnvFloatWithDefault("SWEEP_THRESHOLD", defaults.SweepThreshold)
	cfg.StructureLookback = getEnvIntWithDefault("STRUCTURE_LOOKBACK", defaults.StructureLookback)
	cfg.GrabRecency = getEnvIntWithDefault("GRAB_RECENCY", defaults.GrabRecency)
	cfg.VolumeWindow = getEnvIntWithDefault("VOLUME_WINDOW", defaults.VolumeWindow)
	cfg.ConfluenceHigh = getEnvIntWithDefault("CONFLUENCE_HIGH", defaults.ConfluenceHigh)
	cfg.ConfluenceLow = getEnvIntWithDefault("CONFLUENCE_LOW", defaults.ConfluenceLow)

	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	cfg.RequestTimeout = getEnvIntWithDefault("REQUEST_TIMEOUT", 30)

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.TelegramChatID = getEnvInt64WithDefault("TELEGRAM_CHAT_ID", 0)
	cfg.ClassifierURL = os.Getenv("CLASSIFIER_URL")
	cfg.CronSpec = getEnvWithDefault("CRON_SPEC", "*/5 * * * *")

	return &cfg, nil
}

// EngineParams maps the configured thresholds onto a detector parameter set.
func (c *Config) EngineParams() engine.Params {
	return engine.Params{
		SwingLookback:           c.SwingLookback,
		MinBodyRatio:            c.MinBodyRatio,
		VolumeThreshold:         c.VolumeThreshold,
		LiquidityVolumeIncrease: c.LiquidityVolumeIncrease,
		SweepThreshold:          c.SweepThreshold,
		StructureLookback:       c.StructureLookback,
		GrabRecency:             c.GrabRecency,
		VolumeWindow:            c.VolumeWindow,
		ConfluenceHigh:          c.ConfluenceHigh,
		ConfluenceLow:           c.ConfluenceLow,
	}
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64WithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
