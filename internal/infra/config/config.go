package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const dateLayout = time.DateOnly

// AppConfig holds all configuration for the application
type AppConfig struct {
	LogLevel    string `validate:"required,oneof=trace debug info warn warning error fatal panic"`
	Environment string `validate:"required"`

	// The subscription previewed by cmd/preview
	Interval  int       `validate:"gt=0"`
	StartDate time.Time `validate:"required"`
	Frequency string    `validate:"oneof=daily monthly"`

	PreviewFrom       time.Time     `validate:"required"`
	PreviewCount      int           `validate:"gte=0,lte=366"`
	PreviewCronOffset time.Duration `validate:"gte=0,lt=24h"`
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from a variable lookup function.
func FromEnv(getenv func(string) string) (*AppConfig, error) {
	cfg := &AppConfig{}
	var err error

	cfg.LogLevel = strings.ToLower(getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	if cfg.Interval, err = intOr(getenv("SUBSCRIPTION_INTERVAL"), 7); err != nil {
		return nil, fmt.Errorf("invalid SUBSCRIPTION_INTERVAL: %w", err)
	}

	epoch := time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC)
	if cfg.StartDate, err = dateOr(getenv("SUBSCRIPTION_START_DATE"), epoch); err != nil {
		return nil, fmt.Errorf("invalid SUBSCRIPTION_START_DATE: %w", err)
	}

	cfg.Frequency = strings.ToLower(strings.TrimSpace(getenv("SUBSCRIPTION_FREQUENCY")))
	if cfg.Frequency == "" {
		cfg.Frequency = "daily"
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if cfg.PreviewFrom, err = dateOr(getenv("PREVIEW_FROM"), today); err != nil {
		return nil, fmt.Errorf("invalid PREVIEW_FROM: %w", err)
	}

	if cfg.PreviewCount, err = intOr(getenv("PREVIEW_COUNT"), 5); err != nil {
		return nil, fmt.Errorf("invalid PREVIEW_COUNT: %w", err)
	}

	if raw := getenv("PREVIEW_CRON_OFFSET"); raw != "" {
		if cfg.PreviewCronOffset, err = time.ParseDuration(raw); err != nil {
			return nil, fmt.Errorf("invalid PREVIEW_CRON_OFFSET: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *AppConfig) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

func intOr(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(strings.TrimSpace(raw))
}

func dateOr(raw string, def time.Time) (time.Time, error) {
	if raw == "" {
		return def, nil
	}
	return time.Parse(dateLayout, strings.TrimSpace(raw))
}
