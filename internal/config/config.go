package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":5000"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/bgmi.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`

	// AdminCode gates admin registration. May be empty; registration then
	// fails with a server configuration error instead of silently passing.
	AdminCode string `env:"ADMIN_CODE"`

	SPADir string `env:"SPA_DIR"`
}

func Load() (*Config, error) {
	// A local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
