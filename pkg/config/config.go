package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every runtime knob of the storefront. Values come from
// environment variables with development defaults.
type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"dev"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	HTTPPort int    `env:"HTTP_PORT" envDefault:"8080"`
	DBPath   string `env:"DB_PATH" envDefault:"dekorshop.db"`

	JWTSecret string        `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// Flat shipping fee added to every order, in minor currency units.
	ShippingFee int64 `env:"SHIPPING_FEE" envDefault:"1500"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
