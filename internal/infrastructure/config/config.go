package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3001"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	SessionTTL time.Duration `env:"SESSION_TTL,  default=24h"`
	Simulation SimulationConfig
	Gemini     GeminiConfig
}

type SimulationConfig struct {
	Interval time.Duration `env:"SIM_INTERVAL, default=4s"`
}

type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY"`
	// BaseURL overrides the Google endpoint, used by integration tests.
	BaseURL string `env:"GEMINI_BASE_URL"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
