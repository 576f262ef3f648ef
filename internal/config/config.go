// Package config loads server settings from the environment. A .env file is
// honored when present; every setting is a simple scalar with a default.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	DatabaseFile string
	DailyCredits int
	Timezone     *time.Location

	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string
}

func Load() (*Config, error) {
	// Missing .env is fine; real env vars still apply.
	_ = godotenv.Load()

	cfg := &Config{
		Port:         5174,
		DatabaseFile: "copycraft.db",
		DailyCredits: 10,
		Timezone:     time.UTC,
		LLMBaseURL:   "https://api.openai.com/v1",
		LLMModel:     "gpt-4o-mini",
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("DATABASE_FILE"); v != "" {
		cfg.DatabaseFile = v
	}
	if v := os.Getenv("DAILY_CREDITS"); v != "" {
		credits, err := strconv.Atoi(v)
		if err != nil || credits < 0 {
			return nil, fmt.Errorf("invalid DAILY_CREDITS %q", v)
		}
		cfg.DailyCredits = credits
	}
	if v := os.Getenv("CREDIT_TIMEZONE"); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CREDIT_TIMEZONE %q: %w", v, err)
		}
		cfg.Timezone = loc
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLMBaseURL = v
	}
	cfg.LLMAPIKey = os.Getenv("LLM_API_KEY")
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLMModel = v
	}

	return cfg, nil
}
