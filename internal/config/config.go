// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	TelegramBotToken  string
	DatabasePath      string
	LogLevel          string
	FireHour          int
	FireMinute        int
	Timezone          string
	InitialRecipients []int64
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "./data/bot.db"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	hour, err := intInRange("FIRE_HOUR", 9, 0, 23)
	if err != nil {
		return nil, err
	}

	minute, err := intInRange("FIRE_MINUTE", 0, 0, 59)
	if err != nil {
		return nil, err
	}

	tz := os.Getenv("TIMEZONE")
	if tz == "" {
		tz = "Africa/Lagos"
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
	}

	var recipients []int64
	if raw := os.Getenv("INITIAL_RECIPIENTS"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			id, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid chat ID %q in INITIAL_RECIPIENTS: %w", s, err)
			}
			recipients = append(recipients, id)
		}
	}

	return &Config{
		TelegramBotToken:  token,
		DatabasePath:      dbPath,
		LogLevel:          logLevel,
		FireHour:          hour,
		FireMinute:        minute,
		Timezone:          tz,
		InitialRecipients: recipients,
	}, nil
}

// Location returns the configured timezone. Timezone is validated in Load,
// so this never fails on a loaded Config.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// FireTime formats the configured fire time for display, e.g. "09:00".
func (c *Config) FireTime() string {
	return fmt.Sprintf("%02d:%02d", c.FireHour, c.FireMinute)
}

func intInRange(key string, def, lo, hi int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%s must be between %d and %d, got %d", key, lo, hi, v)
	}
	return v, nil
}
